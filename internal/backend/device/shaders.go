//go:build windows

package device

// WGSL compute shaders backing the WebGPU bridge's launch ops.
// String constants keep the kernels embedded in the binary.

// workgroupSize is the thread count of the linear kernels.
const workgroupSize = 256

// ewiseShader is the template for add/sub/hadamard; op is spliced in by
// the bridge.
const ewiseShaderHead = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
`

const addShader = ewiseShaderHead + `
        result[idx] = a[idx] + b[idx];
    }
}
`

const subShader = ewiseShaderHead + `
        result[idx] = a[idx] - b[idx];
    }
}
`

const hadamardShader = ewiseShaderHead + `
        result[idx] = a[idx] * b[idx];
    }
}
`

// scaleShader multiplies every element by a uniform scalar.
const scaleShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    s: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] * params.s;
    }
}
`

// divScalarShader divides every element by a uniform scalar.
const divScalarShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    s: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] / params.s;
    }
}
`

// scaleByShader multiplies every element of a by the first element of s,
// the device-side (1,1) matmul degeneration.
const scaleByShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> s: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] * s[0];
    }
}
`

// copyShader duplicates a buffer.
const copyShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx];
    }
}
`

// matmulShader computes C = A @ B with A (M rows × K cols) and B (K × N),
// rows contiguous.
const matmulShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    m: u32,
    k: u32,
    n: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;

    if (row >= params.m || col >= params.n) {
        return;
    }

    var sum: f32 = 0.0;
    for (var t: u32 = 0u; t < params.k; t = t + 1u) {
        sum = sum + a[row * params.k + t] * b[t * params.n + col];
    }
    result[row * params.n + col] = sum;
}
`

// transposeShader writes result(j,i) = a(i,j) for extents (x, y).
const transposeShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    x: u32,
    y: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let total = params.x * params.y;
    if (idx >= total) {
        return;
    }
    let i = idx % params.x;
    let j = idx / params.x;
    result[j + i * params.y] = a[idx];
}
`

// convShader computes the sliding-window sum-of-products over three axes
// with a uniform stride. Out-of-input taps contribute zero, which covers
// the same-padding contract.
const convShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read> kernel: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    in_x: u32,
    in_y: u32,
    in_z: u32,
    k_x: u32,
    k_y: u32,
    k_z: u32,
    out_x: u32,
    out_y: u32,
    out_z: u32,
    stride: u32,
    pad_x: u32,
    pad_y: u32,
    pad_z: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let total = params.out_x * params.out_y * params.out_z;
    if (idx >= total) {
        return;
    }
    let ox = idx % params.out_x;
    let oy = (idx / params.out_x) % params.out_y;
    let oz = idx / (params.out_x * params.out_y);

    var sum: f32 = 0.0;
    for (var dz: u32 = 0u; dz < params.k_z; dz = dz + 1u) {
        let iz = i32(oz * params.stride + dz) - i32(params.pad_z);
        if (iz < 0 || iz >= i32(params.in_z)) {
            continue;
        }
        for (var dy: u32 = 0u; dy < params.k_y; dy = dy + 1u) {
            let iy = i32(oy * params.stride + dy) - i32(params.pad_y);
            if (iy < 0 || iy >= i32(params.in_y)) {
                continue;
            }
            for (var dx: u32 = 0u; dx < params.k_x; dx = dx + 1u) {
                let ix = i32(ox * params.stride + dx) - i32(params.pad_x);
                if (ix < 0 || ix >= i32(params.in_x)) {
                    continue;
                }
                let src = u32(ix) + u32(iy) * params.in_x + u32(iz) * params.in_x * params.in_y;
                let ker = dx + dy * params.k_x + dz * params.k_x * params.k_y;
                sum = sum + input[src] * kernel[ker];
            }
        }
    }
    result[idx] = sum;
}
`

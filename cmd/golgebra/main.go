// Package main provides the golgebra CLI.
package main

import (
	"fmt"
	"os"

	"github.com/golgebra/golgebra/backend/host"
	"github.com/golgebra/golgebra/matrix"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("golgebra %s\n", version)
			return
		case "demo":
			if err := demo(); err != nil {
				fmt.Fprintf(os.Stderr, "golgebra: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("golgebra - Dense matrices for Go, host and GPU")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Multiply two small matrices on the host backend")
}

func demo() error {
	b := host.New()
	a, err := matrix.From2D(2, 2, [][]float32{{4, 3}, {6, 3}}, b)
	if err != nil {
		return err
	}
	i, err := matrix.Identity[float32](2, b)
	if err != nil {
		return err
	}
	c, err := a.MatMul(i)
	if err != nil {
		return err
	}
	fmt.Printf("A = %s\nA x I = %v\n", c, c.Data())
	return nil
}

// Command mcgen derives the marching cubes case table and writes it as Go
// source.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"

	"github.com/soypat/isosurf/mctable"
)

func main() {
	output := flag.String("o", "cases3.go", "output file")
	flag.Parse()
	cases, err := mctable.Generate()
	if err != nil {
		log.Fatal(err)
	}
	src, err := format.Source(source(cases))
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*output, src, 0644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d cases to %s", len(cases), *output)
}

func source(cases [256]mctable.Case) []byte {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by mcgen. DO NOT EDIT.\n\npackage mctable\n\n")
	buf.WriteString("// Cases3 maps a cube corner bitmask to its triangles. Triangle vertices\n")
	buf.WriteString("// wind counter clockwise seen from the empty side.\n")
	buf.WriteString("var Cases3 = [256]Case{\n")
	for _, c := range cases {
		buf.WriteString("{")
		for i, t := range c {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "{%d, %d, %d}", t[0], t[1], t[2])
		}
		buf.WriteString("},\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

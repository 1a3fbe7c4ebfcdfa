// Shape dump tool - writes seeded archetype point clouds to CSV.
//
// Usage: go run ./cmd/shapedump -shape Heart -count 2000 -out heart.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/nebula/shapes"
)

// PointRow is one particle position in the dump.
type PointRow struct {
	Shape string  `csv:"shape"`
	Index int     `csv:"index"`
	X     float32 `csv:"x"`
	Y     float32 `csv:"y"`
	Z     float32 `csv:"z"`
}

func main() {
	shape := flag.String("shape", "Sphere", "Archetype to dump, or \"all\"")
	count := flag.Int("count", 15000, "Points per shape")
	seed := flag.Int64("seed", 1, "RNG seed")
	out := flag.String("out", "", "Output CSV path (empty = stdout)")
	flag.Parse()

	var archetypes []shapes.Archetype
	if *shape == "all" {
		archetypes = shapes.All()
	} else {
		a, err := shapes.ParseArchetype(*shape)
		if err != nil {
			log.Fatalf("invalid -shape: %v", err)
		}
		archetypes = []shapes.Archetype{a}
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	gen := shapes.NewGenerator(rand.New(rand.NewSource(*seed)))
	rows := make([]*PointRow, 0, len(archetypes)*max(*count, 0))
	for _, a := range archetypes {
		rows = appendRows(rows, a, gen.Generate(a, *count))
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		log.Fatalf("failed to write CSV: %v", err)
	}
	if *out != "" {
		fmt.Fprintf(os.Stderr, "wrote %d points to %s\n", len(rows), *out)
	}
}

func appendRows(rows []*PointRow, a shapes.Archetype, buf shapes.Buffer) []*PointRow {
	name := a.String()
	for i := 0; i < buf.Len(); i++ {
		p := buf.At(i)
		rows = append(rows, &PointRow{Shape: name, Index: i, X: p.X, Y: p.Y, Z: p.Z})
	}
	return rows
}

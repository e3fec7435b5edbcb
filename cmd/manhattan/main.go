// manhattan renders a Manhattan plot (-log10 p-value by cumulative genomic
// position, alternating colors per chromosome) from a gwasscan result table.
package main

import (
	"bytes"
	"flag"
	"log"
	"math"
	"os"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	gwas "github.com/heroalone/GWAS-HandsOn-Wien"
)

// p-values of exactly zero still need a finite plotting height
const minP = 1e-300

func main() {
	var resultsPath, outPath string
	flag.StringVar(&resultsPath, "results", "", "Path to a result table written by gwasscan.")
	flag.StringVar(&outPath, "out", "manhattan.png", "Output PNG path.")
	flag.Parse()

	if resultsPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --results")
	}

	recs, err := gwas.ReadRecords(resultsPath)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	if len(recs) == 0 {
		log.Fatalln("No records in", resultsPath)
	}

	if err := plot(recs, outPath); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	log.Println("Wrote", outPath)
}

func plot(recs []gwas.Record, outPath string) error {
	// Lay chromosomes end to end on the x axis
	chrMax := make(map[int]int)
	for _, r := range recs {
		if r.Pos > chrMax[r.Chr] {
			chrMax[r.Chr] = r.Pos
		}
	}

	maxChr := 0
	for chr := range chrMax {
		if chr > maxChr {
			maxChr = chr
		}
	}

	offset := make(map[int]float64)
	cum := 0.0
	for chr := 1; chr <= maxChr; chr++ {
		offset[chr] = cum
		cum += float64(chrMax[chr])
	}

	colors := []drawing.Color{chart.ColorBlue, chart.ColorAlternateGray}

	xs := make(map[int][]float64)
	ys := make(map[int][]float64)
	for _, r := range recs {
		p := r.PValue
		if p < minP {
			p = minP
		}
		xs[r.Chr] = append(xs[r.Chr], offset[r.Chr]+float64(r.Pos))
		ys[r.Chr] = append(ys[r.Chr], -math.Log10(p))
	}

	var series []chart.Series
	for chr := 1; chr <= maxChr; chr++ {
		if len(xs[chr]) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    colors[(chr-1)%len(colors)],
			},
			XValues: xs[chr],
			YValues: ys[chr],
		})
	}

	graph := chart.Chart{
		Width:  1024,
		Height: 384,
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Name: "-log10(p)",
		},
		Series: series,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return err
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return err
	}

	return nil
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/clearfield-health/cogreport/internal/assessment"
	"github.com/clearfield-health/cogreport/internal/export"
	"github.com/clearfield-health/cogreport/internal/render"
	"github.com/clearfield-health/cogreport/internal/report"
)

// renderInput is the file shape -input accepts: one raw assessment record
// plus its transcript responses.
type renderInput struct {
	Assessment assessment.RawAssessment      `json:"assessment"`
	Responses  []assessment.QuestionResponse `json:"responses"`
}

func main() {
	inputPath := flag.String("input", "", "Path to assessment JSON")
	outputPath := flag.String("output", "", "Path to write the artifact (defaults to derived PDF filename)")
	htmlOnly := flag.Bool("html", false, "Write the HTML print layout instead of a PDF")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}

	in, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	var payload renderInput
	if err := json.Unmarshal(in, &payload); err != nil {
		log.Fatalf("decode input JSON: %v", err)
	}

	now := time.Now()
	doc := report.BuildDocument(report.BuildInput{
		Patient:    assessment.Normalize(payload.Assessment, now),
		Domains:    payload.Assessment.DomainScores,
		Screenings: payload.Assessment.Screenings,
		IADL:       payload.Assessment.IADL,
		Responses:  payload.Responses,
	})

	if *htmlOnly {
		body, err := render.RenderHTML(doc, render.ModePrint)
		if err != nil {
			log.Fatalf("render html: %v", err)
		}
		out := orDefault(*outputPath, "report.html")
		if err := os.WriteFile(out, []byte(render.BuildPage(report.BrandSubtitle, body)), 0o644); err != nil {
			log.Fatalf("write html: %v", err)
		}
		fmt.Println(out)
		return
	}

	pdf, err := render.NewChromiumRenderer().Render(context.Background(), doc)
	if err != nil {
		log.Fatalf("render pdf: %v", err)
	}
	out := orDefault(*outputPath, export.Filename(payload.Assessment.PatientName, now))
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		log.Fatalf("write pdf: %v", err)
	}
	fmt.Println(out)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

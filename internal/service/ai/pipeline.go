package ai

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/agenticdoctor/backend/internal/model/roster"
	"github.com/agenticdoctor/backend/internal/service/tools"
)

// Sentinel values substituted when an expected pipeline input is absent.
const (
	DefaultPatientInput = "General checkup"
	NoImageProvided     = "No image provided"
	NoLabReportProvided = "No lab report provided"
)

// PipelineInput is the shared bundle every diagnostic stage reads from.
type PipelineInput struct {
	PatientInput  string `json:"patient_input"`
	ImagePath     string `json:"image_path"`
	LabReportPath string `json:"lab_report_path"`
}

// StageResult is the output of one agent/task pair within a pipeline run.
type StageResult struct {
	Task   string `json:"task"`
	Role   string `json:"role"`
	Output string `json:"output"`
}

// PipelineResult aggregates one full diagnostic pass.
type PipelineResult struct {
	Inputs PipelineInput `json:"inputs"`
	Stages []StageResult `json:"stages"`
	Report string        `json:"report"`
	Review string        `json:"review"`
}

// RunDiagnosticPipeline executes the eleven agent/task pairs as one
// sequential pass over the shared input bundle. Tool bindings run once up
// front and feed the relevant stages; later stages see the accumulated
// findings of earlier ones. A failing stage contributes its failure advice
// as output and the pass continues - the pipeline never faults the caller.
func (s *Service) RunDiagnosticPipeline(ctx context.Context, in PipelineInput) PipelineResult {
	inputs := normalizePipelineInput(in)
	result := PipelineResult{Inputs: inputs}

	labText := NoLabReportProvided
	if inputs.LabReportPath != NoLabReportProvided {
		labText = tools.ExtractLabText(inputs.LabReportPath)
	}

	imageProbe := NoImageProvided
	if inputs.ImagePath != NoImageProvided {
		imageProbe = tools.ParseMedicalImage(inputs.ImagePath)
	}

	pubmedResults := "PubMed search unavailable"
	if s.research != nil {
		pubmedResults = s.research.Search(ctx, inputs.PatientInput)
	}

	var findings strings.Builder
	for _, taskType := range roster.PipelineOrder {
		profile, ok := s.roster.FindByID(taskType)
		if !ok {
			log.Printf("[pipeline] skipping unknown task type %q", taskType)
			continue
		}

		kwargs := map[string]string{
			"patient_input":   inputs.PatientInput,
			"image_path":      inputs.ImagePath,
			"lab_report_path": inputs.LabReportPath,
			"lab_report_text": labText,
			"image_probe":     imageProbe,
			"pubmed_results":  pubmedResults,
			"prior_findings":  findings.String(),
		}

		var output string
		msg, err := s.invokeProfile(ctx, profile, kwargs)
		if err != nil {
			log.Printf("[pipeline] %s stage failed: %v", taskType, err)
			output = FailureAdvice(err)
		} else {
			output = SanitizeResponse(resultText(msg))
		}

		result.Stages = append(result.Stages, StageResult{
			Task:   profile.ID,
			Role:   profile.Role,
			Output: output,
		})
		fmt.Fprintf(&findings, "[%s]\n%s\n\n", profile.Role, output)

		switch taskType {
		case "report":
			result.Report = output
		case "collab":
			result.Review = output
		}
	}

	if s.diagnostics != nil {
		record := map[string]string{
			"patient_input":   inputs.PatientInput,
			"image_path":      inputs.ImagePath,
			"lab_report_path": inputs.LabReportPath,
		}
		if err := s.diagnostics.Append(record, result.Stages); err != nil {
			log.Printf("[pipeline] failed to log diagnostic run: %v", err)
		}
	}

	return result
}

// normalizePipelineInput applies the sentinel defaults: blank symptoms
// become a general checkup, unreachable file paths become "not provided".
func normalizePipelineInput(in PipelineInput) PipelineInput {
	out := in
	if strings.TrimSpace(out.PatientInput) == "" {
		out.PatientInput = DefaultPatientInput
	}
	if out.ImagePath == "" || !fileExists(out.ImagePath) {
		out.ImagePath = NoImageProvided
	}
	if out.LabReportPath == "" || !fileExists(out.LabReportPath) {
		out.LabReportPath = NoLabReportProvided
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

package pipeline

import "fmt"

// Stage names one state of the analysis pipeline
type Stage string

// Pipeline stages in execution order
const (
	StageRender    Stage = "render"
	StageClassify  Stage = "classify"
	StageExtractJD Stage = "extract_jd"
	StageMatch     Stage = "match"
	StageAssessFit Stage = "assess_fit"
	StageAssemble  Stage = "assemble"
)

// StageDefinition describes a stage and the stage that must complete before it starts
type StageDefinition struct {
	Name      Stage
	Message   string
	DependsOn Stage
}

// stageRegistry holds every stage in execution order
var stageRegistry = []StageDefinition{
	{Name: StageRender, Message: "Rendering portfolio"},
	{Name: StageClassify, Message: "Classifying portfolio build", DependsOn: StageRender},
	{Name: StageExtractJD, Message: "Extracting job title and ATS keywords", DependsOn: StageClassify},
	{Name: StageMatch, Message: "Matching ATS keywords", DependsOn: StageExtractJD},
	{Name: StageAssessFit, Message: "Assessing fit", DependsOn: StageMatch},
	{Name: StageAssemble, Message: "Assembling report", DependsOn: StageAssessFit},
}

// GetStageDefinition returns the definition for a stage
func GetStageDefinition(name Stage) (StageDefinition, int, error) {
	for i, def := range stageRegistry {
		if def.Name == name {
			return def, i, nil
		}
	}
	return StageDefinition{}, -1, fmt.Errorf("unknown stage: %s", name)
}

// StageError wraps the failure of a single stage. No partial result accompanies it.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

package proj

import "strings"

// Step is one stage of a transformation pipeline.
type Step struct {
	// Inverse runs the step in the inverse direction (+inv).
	Inverse bool
	// Definition is the step's proj-string without the +step token,
	// e.g. "+proj=merc +ellps=clrk66 +lat_ts=33".
	Definition string
}

// pipelineDefinition assembles the +proj=pipeline grammar from a step list.
func pipelineDefinition(steps []Step) (string, error) {
	if len(steps) == 0 {
		return "", &DefinitionError{Message: "a pipeline needs at least one step"}
	}
	var sb strings.Builder
	sb.WriteString("+proj=pipeline")
	for _, step := range steps {
		def := strings.Join(strings.Fields(step.Definition), " ")
		if def == "" {
			return "", &DefinitionError{Message: "empty pipeline step"}
		}
		sb.WriteString(" +step")
		if step.Inverse {
			sb.WriteString(" +inv")
		}
		sb.WriteString(" ")
		sb.WriteString(def)
	}
	return sb.String(), nil
}

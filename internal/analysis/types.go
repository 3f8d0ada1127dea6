package analysis

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SpeakerText is one selected speaker and their full transcript.
type SpeakerText struct {
	Name       string
	Transcript string
}

// reply is the object the model is asked to emit.
type reply struct {
	Results []profileSchema `json:"results" jsonschema:"required"`
}

type profileSchema struct {
	Name   string `json:"name" jsonschema:"required,description=Speaker name exactly as given"`
	MBTI   string `json:"mbti" jsonschema:"required,pattern=^[EIei][SNsn][TFtf][JPjp]$"`
	Scores []int  `json:"scores" jsonschema:"required,minItems=4,maxItems=4,description=Energy then Information then Decisions then Lifestyle on 0-100"`
}

// replySchema is the JSON schema for reply, rendered once for the prompt.
var replySchema = generateSchema[reply]()

func generateSchema[T any]() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	b, err := json.MarshalIndent(reflector.Reflect(v), "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}

// AnalysisFailedError covers every way an analysis run can fail: transport,
// missing or malformed JSON, or speakers absent from the result.
type AnalysisFailedError struct {
	Cause error
}

func (e *AnalysisFailedError) Error() string {
	return "analysis failed: " + e.Cause.Error()
}

func (e *AnalysisFailedError) Unwrap() error { return e.Cause }

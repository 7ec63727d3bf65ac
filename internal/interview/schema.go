package interview

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema used to validate a service reply before it
// is decoded. It is compiled on first use.
type Schema struct {
	Name       string
	Definition map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

var (
	stringList   = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	nullableList = map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}}
	nullableText = map[string]any{"type": []any{"string", "null"}}
	requiredText = map[string]any{"type": "string", "minLength": 1}
	questionType = map[string]any{"type": "string", "enum": []any{QuestionTypeMCQ, QuestionTypeGeneral}}
	questionNum  = map[string]any{"type": "integer", "minimum": 1}
	scoreValue   = map[string]any{"type": "number", "minimum": 0, "maximum": 10}
)

// StartSchema validates the reply to POST /interview/start.
var StartSchema = &Schema{
	Name: "interview-start",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"session_id":       requiredText,
			"message":          nullableText,
			"current_question": requiredText,
			"question_number":  questionNum,
			"total_questions":  questionNum,
			"question_type":    questionType,
			"options":          nullableList,
		},
		"required": []any{"session_id", "current_question", "question_number", "total_questions", "question_type"},
	},
}

var evaluationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"score":            scoreValue,
		"feedback":         map[string]any{"type": "string"},
		"strengths":        nullableList,
		"missing_concepts": nullableList,
	},
	"required": []any{"score", "feedback"},
}

var reportSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"candidate_name":    map[string]any{"type": "string"},
		"interview_date":    nullableText,
		"overall_score":     scoreValue,
		"mcq_score":         scoreValue,
		"general_score":     scoreValue,
		"performance_level": map[string]any{"type": "string"},
		"duration_minutes":  map[string]any{"type": "number", "minimum": 0},
		"summary": map[string]any{
			"type": []any{"object", "null"},
			"properties": map[string]any{
				"strengths":             nullableList,
				"areas_for_improvement": nullableList,
			},
		},
		"recommendations": stringList,
		"detailed_feedback": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question":      map[string]any{"type": "string"},
					"answer":        map[string]any{"type": "string"},
					"question_type": questionType,
					"evaluation":    evaluationSchema,
				},
				"required": []any{"question", "answer", "question_type", "evaluation"},
			},
		},
	},
	"required": []any{
		"candidate_name", "overall_score", "mcq_score", "general_score",
		"performance_level", "duration_minutes", "recommendations", "detailed_feedback",
	},
}

// SubmitSchema validates the reply to POST /interview/submit-answer. A
// completed reply must carry a report; any other reply must carry feedback
// and the next question. Fields the active shape does not use may be null
// or empty.
var SubmitSchema = &Schema{
	Name: "interview-submit",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status":          map[string]any{"type": "string"},
			"feedback":        nullableText,
			"score":           map[string]any{"type": []any{"number", "null"}, "minimum": 0, "maximum": 10},
			"correct_answer":  nullableText,
			"suggestions":     nullableList,
			"next_question":   nullableText,
			"question_number": map[string]any{"type": []any{"integer", "null"}},
			"total_questions": map[string]any{"type": []any{"integer", "null"}, "minimum": 1},
			"question_type":   nullableText,
			"options":         nullableList,
			"report":          map[string]any{"type": []any{"object", "null"}},
		},
		"required": []any{"status"},
		"if": map[string]any{
			"properties": map[string]any{"status": map[string]any{"const": StatusCompleted}},
		},
		"then": map[string]any{
			"properties": map[string]any{"report": reportSchema},
			"required":   []any{"report"},
		},
		"else": map[string]any{
			"properties": map[string]any{
				"feedback":        map[string]any{"type": "string"},
				"next_question":   requiredText,
				"question_number": questionNum,
				"question_type":   questionType,
			},
			"required": []any{"feedback", "next_question", "question_number", "question_type"},
		},
	},
}

// PingSchema validates the health route reply.
var PingSchema = &Schema{
	Name: "interview-ping",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"message": map[string]any{"type": "string"}},
		"required":   []any{"message"},
	},
}

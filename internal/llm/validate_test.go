package llm_test

import (
	"errors"
	"testing"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/llm"
)

func TestValidate_DiagnosisReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		ok    bool
	}{
		{"matched misconception", `{"misconception_id":"ends-missed","confidence":0.9,"reasoning":"Forgot the tree at the far end."}`, true},
		{"no match is null", `{"misconception_id":null,"confidence":0.2,"reasoning":"Looks like a slip."}`, true},
		{"confidence above one", `{"misconception_id":"ends-kept","confidence":1.5,"reasoning":"x"}`, false},
		{"missing reasoning", `{"misconception_id":"ends-kept","confidence":0.5}`, false},
		{"extra field", `{"misconception_id":null,"confidence":0.1,"reasoning":"x","answer":11}`, false},
		{"id is a number", `{"misconception_id":3,"confidence":0.5,"reasoning":"x"}`, false},
		{"not JSON", `The learner forgot an end tree.`, false},
		{"trailing text", `{"misconception_id":null,"confidence":0.1,"reasoning":"x"} thanks`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := llm.Validate(diagnosis.DiagnosisSchema, []byte(tt.reply))
			if tt.ok {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var invalid *llm.ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("Validate() = %v, want *ErrInvalidResponse", err)
			}
			if string(invalid.Content) != tt.reply {
				t.Errorf("Content = %q, want the raw reply", invalid.Content)
			}
		})
	}
}

func TestValidate_LessonReply(t *testing.T) {
	valid := `{
		"title": "Count the gaps first",
		"explanation": "Divide the road by the spacing to get the gaps. With both ends planted there is one more tree than gaps.",
		"worked_example": "1. 60 ÷ 5 = 12 gaps. 2. 12 + 1 = 13 trees.",
		"practice_question": {"text": "A 40 m path, a tree every 10 m, both ends.", "length": 40, "interval": 10, "explanation": "4 gaps, 5 trees."}
	}`
	if err := llm.Validate(lessons.LessonSchema, []byte(valid)); err != nil {
		t.Fatalf("valid lesson rejected: %v", err)
	}

	noNumbers := `{
		"title": "Count the gaps first",
		"explanation": "x",
		"worked_example": "x",
		"practice_question": {"text": "A 40 m path.", "length": "forty", "interval": 10, "explanation": "x"}
	}`
	if err := llm.Validate(lessons.LessonSchema, []byte(noNumbers)); err == nil {
		t.Fatal("lesson with a string length was accepted")
	}

	if err := llm.Validate(lessons.LessonSchema, []byte(`{"title":"Gaps"}`)); err == nil {
		t.Fatal("lesson without a practice question was accepted")
	}
}

func TestValidate_CompressionAndProfile(t *testing.T) {
	if err := llm.Validate(lessons.SessionCompressionSchema, []byte(`{"summary":"Keeps adding a tree on loops."}`)); err != nil {
		t.Fatalf("error summary rejected: %v", err)
	}
	if err := llm.Validate(lessons.HistoryCompressionSchema, []byte(`{"summary":""}`)); err != nil {
		t.Fatalf("empty chat summary rejected: %v", err)
	}
	if err := llm.Validate(lessons.HistoryCompressionSchema, []byte(`{}`)); err == nil {
		t.Fatal("chat summary without summary accepted")
	}

	profile := `{"summary":"Solid on lines.","strengths":["both ends"],"weaknesses":["loops"],"patterns":["adds a closing tree"]}`
	if err := llm.Validate(lessons.ProfileSchema, []byte(profile)); err != nil {
		t.Fatalf("profile rejected: %v", err)
	}
	if err := llm.Validate(lessons.ProfileSchema, []byte(`{"summary":"x","strengths":[1],"weaknesses":[],"patterns":[]}`)); err == nil {
		t.Fatal("profile with a numeric strength accepted")
	}
}

func TestValidate_NilSchemaAcceptsChatText(t *testing.T) {
	if err := llm.Validate(nil, []byte("Count the gaps, then add one tree.")); err != nil {
		t.Fatalf("Validate(nil) = %v", err)
	}
}

func TestValidate_CachedSchemaIsReused(t *testing.T) {
	reply := []byte(`{"misconception_id":null,"confidence":0,"reasoning":"x"}`)
	for i := 0; i < 3; i++ {
		if err := llm.Validate(diagnosis.DiagnosisSchema, reply); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

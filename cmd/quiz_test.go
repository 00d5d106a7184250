package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/quiz/quiztest"
)

func startTier(t *testing.T, tier quiz.Tier) *engine.Controller {
	t.Helper()
	ctrl := engine.NewController(nil, nil)
	require.NoError(t, ctrl.LoadTopic(quiztest.Set("math", "limits")))
	require.NoError(t, ctrl.EnterTier(tier))
	return ctrl
}

func TestPlayTier_PerfectMCQ(t *testing.T) {
	ctrl := startTier(t, quiz.TierMultipleChoice)
	in := strings.Repeat("a\n", quiz.MCQCount)
	var out bytes.Buffer

	st, err := playTier(ctrl, strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.True(t, st.Perfect())
	assert.Equal(t, quiz.MCQCount, st.Score)
	assert.Contains(t, out.String(), "Excellent! A perfect score.")
	assert.Contains(t, out.String(), "Warm-up 12/12")
}

func TestPlayTier_JudgmentScoresPerStatement(t *testing.T) {
	ctrl := startTier(t, quiz.TierJudgment)
	// quiztest alternates T/F; the first line gets every statement right,
	// the rest get half right.
	in := "TFTF\nt t t t\na=t b=t c=t d=t\nTTTT\n"
	var out bytes.Buffer

	st, err := playTier(ctrl, strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.True(t, st.Completed)
	assert.Equal(t, 4+2+2+2, st.Score)
	assert.Equal(t, 16, st.TotalScorable)
	assert.Contains(t, out.String(), "2 correct.")
}

func TestPlayTier_ShortAnswerAcceptsDecimalPoint(t *testing.T) {
	ctrl := startTier(t, quiz.TierShortAnswer)
	in := "0.5\n1,5\n2.5\n3,5\nwrong\n5.5\n"
	var out bytes.Buffer

	st, err := playTier(ctrl, strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.Equal(t, 5, st.Score)
	assert.Contains(t, out.String(), "Answer: 4,5")
}

func TestPlayTier_RepromptsOnBadInput(t *testing.T) {
	ctrl := startTier(t, quiz.TierMultipleChoice)
	in := "\nz\n" + strings.Repeat("1\n", quiz.MCQCount)
	var out bytes.Buffer

	st, err := playTier(ctrl, strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.True(t, st.Perfect())
	assert.Contains(t, out.String(), "empty answer")
	assert.Contains(t, out.String(), "unknown choice id")
}

func TestPlayTier_ClosedInputAbandons(t *testing.T) {
	ctrl := startTier(t, quiz.TierMultipleChoice)
	var out bytes.Buffer

	st, err := playTier(ctrl, strings.NewReader("a\nb\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseTierSelect, st.Phase)
	assert.Contains(t, out.String(), "(input closed)")
}

func TestParseJudgment(t *testing.T) {
	stmts := []quiz.SubStatement{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	want := map[string]bool{"a": true, "b": false, "c": true, "d": false}

	tests := []struct {
		in      string
		want    map[string]bool
		wantErr bool
	}{
		{"TFTF", want, false},
		{"t f t f", want, false},
		{"a=t, b=f, c=true, d=false", want, false},
		{"A=T b=F", map[string]bool{"a": true, "b": false}, false},
		{"TFT", nil, true},
		{"TFXF", nil, true},
		{"a=maybe", nil, true},
		{"a=t b", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseJudgment(stmts, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResponse_ChoiceByNumber(t *testing.T) {
	q := engine.Question{
		Tier:    quiz.TierMultipleChoice,
		Choices: []quiz.Choice{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	}
	ctrlResp, err := parseResponse(q, " 2 ")
	require.NoError(t, err)
	assert.Equal(t, engine.ChoiceResponse("b"), ctrlResp)

	letter, err := parseResponse(q, "C")
	require.NoError(t, err)
	assert.Equal(t, engine.ChoiceResponse("c"), letter)
}

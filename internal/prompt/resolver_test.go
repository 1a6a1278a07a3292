package prompt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAsker is a non-interactive Asker returning canned answers.
type scriptedAsker struct {
	answers     []string
	calls       int
	questions   []string
	suggestions [][]string
	defaults    []string
}

func (s *scriptedAsker) Ask(question string, suggestions []string, defaultValue string) (string, error) {
	s.questions = append(s.questions, question)
	s.suggestions = append(s.suggestions, suggestions)
	s.defaults = append(s.defaults, defaultValue)
	if s.calls >= len(s.answers) {
		return "", fmt.Errorf("unexpected prompt: %s", question)
	}
	answer := s.answers[s.calls]
	s.calls++
	return answer, nil
}

func TestResolve_ExplicitValueSkipsPrompt(t *testing.T) {
	asker := &scriptedAsker{}
	resolver := NewResolver(asker)
	args := ArgSet{}

	value, err := resolver.Resolve(args, "site", "example.com", Options{
		Suggestions: []string{"example.com", "another.org"},
	})

	require.NoError(t, err)
	assert.Equal(t, "example.com", value.Str)
	assert.Equal(t, SourceExplicit, value.Source)
	assert.Zero(t, asker.calls, "explicit value must not trigger a prompt")
	assert.Equal(t, "example.com", args.Get("site"), "resolved value must be written back")
}

func TestResolve_ExplicitEnumValueValidated(t *testing.T) {
	resolver := NewResolver(&scriptedAsker{})

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"on", false},
		{"off", false},
		{"sideways", true},
		{"ON", true}, // enum match is exact
	}

	for _, tt := range tests {
		_, err := resolver.ResolveEnum(ArgSet{}, "status", tt.value, []string{"on", "off"}, "on")
		if tt.wantErr {
			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid, "value %q", tt.value)
			assert.Equal(t, "status", invalid.Name)
			assert.Equal(t, tt.value, invalid.Value)
			assert.Equal(t, []string{"on", "off"}, invalid.Allowed)
		} else {
			require.NoError(t, err, "value %q", tt.value)
		}
	}
}

func TestResolve_PromptsWhenAbsent(t *testing.T) {
	asker := &scriptedAsker{answers: []string{"another.org"}}
	resolver := NewResolver(asker)
	args := ArgSet{}

	value, err := resolver.Resolve(args, "site", "", Options{
		Question:    "Which site?",
		Suggestions: []string{"example.com", "another.org"},
	})

	require.NoError(t, err)
	assert.Equal(t, "another.org", value.Str)
	assert.Equal(t, SourcePrompted, value.Source)
	assert.Equal(t, []string{"Which site?"}, asker.questions)
	assert.Equal(t, []string{"example.com", "another.org"}, asker.suggestions[0])
	assert.Equal(t, "another.org", args.Get("site"))
}

func TestResolve_EmptyAnswerFallsBackToDefault(t *testing.T) {
	asker := &scriptedAsker{answers: []string{""}}
	resolver := NewResolver(asker)
	args := ArgSet{}

	value, err := resolver.ResolveEnum(args, "status", "", []string{"on", "off"}, "on")

	require.NoError(t, err)
	assert.Equal(t, "on", value.Str)
	assert.Equal(t, SourceDefault, value.Source)
	assert.Equal(t, "on", args.Get("status"))
}

func TestResolve_PromptedEnumValueValidated(t *testing.T) {
	asker := &scriptedAsker{answers: []string{"maybe"}}
	resolver := NewResolver(asker)

	_, err := resolver.ResolveEnum(ArgSet{}, "status", "", []string{"on", "off"}, "on")

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "maybe", invalid.Value)
}

func TestResolve_DefaultQuestionNamesParameter(t *testing.T) {
	asker := &scriptedAsker{answers: []string{"x"}}
	resolver := NewResolver(asker)

	_, err := resolver.Resolve(ArgSet{}, "destination", "", Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Enter destination"}, asker.questions)
}

func TestResolve_ExplicitWhitespaceTreatedAsAbsent(t *testing.T) {
	asker := &scriptedAsker{answers: []string{"typed"}}
	resolver := NewResolver(asker)

	value, err := resolver.Resolve(ArgSet{}, "site", "   ", Options{})

	require.NoError(t, err)
	assert.Equal(t, "typed", value.Str)
	assert.Equal(t, SourcePrompted, value.Source)
}

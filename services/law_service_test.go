package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Right to Information Act, 2005", "right-to-information-act-2005"},
		{"  Consumer Protection  ", "consumer-protection"},
		{"What's New?", "whats-new"},
		{"---", ""},
		{"Sharia & Co. (Amendment)", "sharia-co-amendment"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "input %q", c.in)
	}
}

func TestSlugifyCapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "abcde "
	}
	got := Slugify(long)
	assert.LessOrEqual(t, len(got), 160)
	assert.NotEqual(t, "-", got[len(got)-1:])
}

func TestCleanStrings(t *testing.T) {
	got := CleanStrings([]string{"a, b", " c \nd", "", "  "})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestLawInputValidateDefaults(t *testing.T) {
	in := LawInput{Title: "  Some Act  "}
	require.NoError(t, in.validate())
	assert.Equal(t, "Some Act", in.Title)
	assert.Equal(t, "Other", in.Category)
	assert.Equal(t, "statute", in.LawType)
}

func TestLawInputValidateRejectsBadLawType(t *testing.T) {
	in := LawInput{Title: "Some Act", LawType: "regulation"}
	assert.Error(t, in.validate())

	in = LawInput{Title: "Some Act", LawType: "case"}
	assert.NoError(t, in.validate())
}

func TestLawInputValidateRequiresTitle(t *testing.T) {
	in := LawInput{Title: "   "}
	assert.Error(t, in.validate())
}

package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontMatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	raw, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, raw)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontMatter_SplitsMetadataAndBody(t *testing.T) {
	input := []byte("---\ntitle: A\ndate: 2020-01-01\n---\nBody")

	raw, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: A\ndate: 2020-01-01\n"), raw)
	require.Equal(t, []byte("Body"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	_, _, had, _, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_ClosingDelimiterAtEOF_ClosesBlock(t *testing.T) {
	input := []byte("---\ntitle: A\n---")

	raw, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: A\n"), raw)
	require.Empty(t, body)
}

func TestSplit_CRLF_SplitsMetadataAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	raw, body, had, style, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "\r\n", style.Newline)
	require.Equal(t, []byte("key: value\r\n"), raw)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyBlock_SplitsAsHadWithEmptyMetadata(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	raw, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, raw)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestParseYAML_Mapping(t *testing.T) {
	fields, err := ParseYAML([]byte("title: A\ncategories:\n  - go\n  - blog\n"))
	require.NoError(t, err)
	require.Equal(t, "A", fields["title"])
	require.Equal(t, []any{"go", "blog"}, fields["categories"])
}

func TestParseYAML_NonMapping_Rejected(t *testing.T) {
	_, err := ParseYAML([]byte("- just\n- a\n- list\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotAMapping))
}

func TestParseYAML_InvalidLine_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte("title: [unclosed\n"))
	require.Error(t, err)
}

func TestParse_NoBlock_EmptyMetadataFullBody(t *testing.T) {
	input := []byte("just prose, no markers\n")

	fields, body, err := Parse(input)
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, input, body)
}

func TestParse_ScenarioFromContract(t *testing.T) {
	fields, body, err := Parse([]byte("---\ntitle: A\ndate: 2020-01-01\n---\nBody"))
	require.NoError(t, err)
	require.Equal(t, "A", fields["title"])
	require.NotNil(t, fields["date"])
	require.Equal(t, []byte("Body"), body)
}

func TestRoundTrip_ParseSerializeParse_Idempotent(t *testing.T) {
	raw := []byte("categories:\n  - rust\n  - gui\nlayout: post\ntitle: Iced architecture\n")

	fields, err := ParseYAML(raw)
	require.NoError(t, err)

	out, err := SerializeYAML(fields, Style{Newline: "\n"})
	require.NoError(t, err)

	fields2, err := ParseYAML(out)
	require.NoError(t, err)
	require.Equal(t, fields, fields2)

	// A second serialize of the recovered fields is byte-identical.
	out2, err := SerializeYAML(fields2, Style{Newline: "\n"})
	require.NoError(t, err)
	require.Equal(t, out, out2)
}

func TestJoin_ReassemblesDocument(t *testing.T) {
	raw := []byte("title: A\n")
	body := []byte("Body\n")

	joined := Join(raw, body, true, Style{Newline: "\n"})
	require.Equal(t, []byte("---\ntitle: A\n---\nBody\n"), joined)

	// Without front matter the body passes through untouched.
	require.Equal(t, body, Join(nil, body, false, Style{}))
}

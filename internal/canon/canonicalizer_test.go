package canon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeReplacesAllMarkupCharacters(t *testing.T) {
	got := Escape(`<script>alert("hi") & 'bye'</script>`)
	assert.Equal(t, "&lt;script&gt;alert(&quot;hi&quot;) &amp; &#039;bye&#039;&lt;/script&gt;", got)
}

func TestCanonicalizeOutputHasNoLiteralMarkup(t *testing.T) {
	inputs := []string{
		`<b>bold</b>`,
		`"quoted" & 'single'`,
		`a < b > c`,
		`&&&&`,
		`<:smile:>`,
	}
	for _, in := range inputs {
		out := Canonicalize(in)
		assert.NotContains(t, out, "<", "input %q", in)
		assert.NotContains(t, out, ">", "input %q", in)
		assert.NotContains(t, out, `"`, "input %q", in)
		assert.NotContains(t, out, "'", "input %q", in)
		// Every remaining ampersand must open an entity we produced.
		rest := out
		for {
			i := strings.Index(rest, "&")
			if i == -1 {
				break
			}
			tail := rest[i:]
			ok := strings.HasPrefix(tail, "&amp;") ||
				strings.HasPrefix(tail, "&lt;") ||
				strings.HasPrefix(tail, "&gt;") ||
				strings.HasPrefix(tail, "&quot;") ||
				strings.HasPrefix(tail, "&#039;")
			assert.True(t, ok, "unescaped ampersand in %q", out)
			rest = tail[1:]
		}
	}
}

func TestSubstituteReplacesShorthand(t *testing.T) {
	assert.Equal(t, "hello 😄", Canonicalize("hello :smile:"))
	assert.Equal(t, "👍👍", Canonicalize(":thumbsup::thumbsup:"))
	assert.Equal(t, "no tokens here", Canonicalize("no tokens here"))
}

func TestSubstituteIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "😄", Canonicalize(":SMILE:"))
	assert.Equal(t, "😄", Canonicalize(":Smile:"))
	assert.Equal(t, "🎉", Canonicalize(":TaDa:"))
}

func TestEscapeRunsBeforeSubstitution(t *testing.T) {
	// A token wrapped in markup still substitutes cleanly: the markup
	// is escaped first, leaving the token intact for the table pass.
	assert.Equal(t, "&lt;😄&gt;", Canonicalize("<:smile:>"))
	assert.Equal(t, "&quot;🔥&quot;", Canonicalize(`":fire:"`))
}

func TestSharedPrefixTokensDoNotShadowEachOther(t *testing.T) {
	// :smile: precedes :smiley: in the table but cannot match inside
	// it: the trailing delimiter differs.
	assert.Equal(t, "😃", Canonicalize(":smiley:"))
	assert.Equal(t, "😄 😃", Canonicalize(":smile: :smiley:"))
}

func TestDeclarationOrderBreaksOverlapTies(t *testing.T) {
	// ":100:" is declared before ":cat:" and both could claim the
	// middle colon of ":cat:100:". The earlier entry wins and consumes
	// its span, leaving the remainder unmatched.
	assert.Equal(t, ":cat💯", Canonicalize(":cat:100:"))
}

func TestConsumedSpansAreNotRescanned(t *testing.T) {
	// Adjacent and partial token text: each replacement consumes its
	// span, and the leftover "x:" never re-forms a token.
	assert.Equal(t, "❌❌x:", Canonicalize(":x::x:x:"))
}

func TestCanonicalizeNotIdempotentOnOwnOutput(t *testing.T) {
	// Expected, not a bug: canonicalization runs exactly once, at
	// message construction. Feeding output back through re-escapes
	// the ampersands of the entities produced the first time.
	once := Canonicalize("a & b :smile:")
	assert.Equal(t, "a &amp; b 😄", once)
	assert.NotEqual(t, once, Canonicalize(once))
}

func TestTableEntriesAreWellFormed(t *testing.T) {
	entries := Table()
	require.GreaterOrEqual(t, len(entries), 60)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Token, ":"), "token %q", e.Token)
		assert.True(t, strings.HasSuffix(e.Token, ":"), "token %q", e.Token)
		assert.Equal(t, strings.ToLower(e.Token), e.Token, "token %q must be lowercase", e.Token)
		assert.False(t, seen[e.Token], "duplicate token %q", e.Token)
		seen[e.Token] = true
		assert.NotEmpty(t, e.Symbol)
		// Substituting a bare token yields exactly its symbol.
		assert.Equal(t, e.Symbol, Substitute(e.Token), "token %q", e.Token)
	}
}

func TestTableReturnsACopy(t *testing.T) {
	entries := Table()
	entries[0].Symbol = "tampered"
	assert.NotEqual(t, "tampered", Table()[0].Symbol)
}

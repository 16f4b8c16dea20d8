package canon

// Entry maps one colon-delimited shorthand token to its display symbol.
type Entry struct {
	Token  string
	Symbol string
}

// shorthands is the substitution table. Order matters: substitution
// proceeds in declaration order and each replacement consumes its
// matched span, so declaration order is the documented tie-break when
// tokens could overlap. Tokens are lowercase; matching is
// case-insensitive.
var shorthands = []Entry{
	{":smile:", "😄"},
	{":smiley:", "😃"},
	{":grin:", "😁"},
	{":laughing:", "😆"},
	{":joy:", "😂"},
	{":sweat_smile:", "😅"},
	{":blush:", "😊"},
	{":wink:", "😉"},
	{":heart_eyes:", "😍"},
	{":kissing_heart:", "😘"},
	{":smirk:", "😏"},
	{":sunglasses:", "😎"},
	{":thinking:", "🤔"},
	{":neutral_face:", "😐"},
	{":expressionless:", "😑"},
	{":unamused:", "😒"},
	{":confused:", "😕"},
	{":worried:", "😟"},
	{":cry:", "😢"},
	{":sob:", "😭"},
	{":angry:", "😠"},
	{":rage:", "😡"},
	{":scream:", "😱"},
	{":flushed:", "😳"},
	{":sleepy:", "😪"},
	{":yum:", "😋"},
	{":innocent:", "😇"},
	{":thumbsup:", "👍"},
	{":thumbsdown:", "👎"},
	{":ok_hand:", "👌"},
	{":clap:", "👏"},
	{":wave:", "👋"},
	{":pray:", "🙏"},
	{":muscle:", "💪"},
	{":eyes:", "👀"},
	{":heart:", "❤️"},
	{":broken_heart:", "💔"},
	{":fire:", "🔥"},
	{":star:", "⭐"},
	{":sparkles:", "✨"},
	{":tada:", "🎉"},
	{":rocket:", "🚀"},
	{":100:", "💯"},
	{":zzz:", "💤"},
	{":skull:", "💀"},
	{":ghost:", "👻"},
	{":alien:", "👽"},
	{":robot:", "🤖"},
	{":cat:", "🐱"},
	{":dog:", "🐶"},
	{":coffee:", "☕"},
	{":beer:", "🍺"},
	{":pizza:", "🍕"},
	{":cake:", "🎂"},
	{":gift:", "🎁"},
	{":bulb:", "💡"},
	{":zap:", "⚡"},
	{":bell:", "🔔"},
	{":lock:", "🔒"},
	{":key:", "🔑"},
	{":wrench:", "🔧"},
	{":bug:", "🐛"},
	{":warning:", "⚠️"},
	{":white_check_mark:", "✅"},
	{":x:", "❌"},
	{":question:", "❓"},
	{":exclamation:", "❗"},
}

// Table returns the substitution entries in declaration order so tests
// and tooling can enumerate them exhaustively.
func Table() []Entry {
	out := make([]Entry, len(shorthands))
	copy(out, shorthands)
	return out
}

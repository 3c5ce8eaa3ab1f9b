package domain

import "strings"

// PassToken is the literal the judge emits on success.
const PassToken = "Pass"

// Verdict is the parsed outcome of a judge evaluation.
type Verdict struct {
	Pass bool
	// Reason carries the judge's full reply on failure. It is threaded
	// into the next refinement as feedback.
	Reason string
}

// ParseVerdict interprets a raw judge reply.
//
// Any reply containing the token "Pass" anywhere counts as success. This
// substring match is deliberately lenient and is kept for compatibility
// with the upstream judging contract; a Fail reason that happens to
// mention "Pass" would be misread. Callers that need stricter parsing
// should delimit the verdict on the judge side.
func ParseVerdict(reply string) Verdict {
	if strings.Contains(reply, PassToken) {
		return Verdict{Pass: true}
	}
	return Verdict{Reason: strings.TrimSpace(reply)}
}

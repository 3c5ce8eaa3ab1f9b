package llm

import (
	"fmt"
	"strings"

	"github.com/aretw0/requery/pkg/domain"
	"github.com/aretw0/requery/pkg/ports"
)

const judgeSystemPrompt = `You are a SQL quality-assurance expert. You evaluate whether the JSON result of executing a query plausibly answers a user's natural-language question. You never see the query itself and cannot execute SQL; judge only the question text and the JSON result.

A result passes when its structure and data are relevant and useful for the question's intent, even if not perfect. It fails when it is irrelevant, incomplete for what was asked, or logically flawed.

Reply with exactly one of:
- "Pass"
- "Fail: [concise reason focused on why the result data does not answer the question]"`

const refinerSystemPrompt = `You are a domain language simplification expert. You rephrase domain-heavy natural-language questions into simpler, more direct questions so that a separate NL2SQL model can translate them into queries.

Rules:
- Preserve the original meaning and intent completely; change only the phrasing.
- Use everyday vocabulary, direct verbs (List, Count, Sum, What percentage, Group by) and simple sentence structure.
- Replace domain terms with their canonical short forms using the provided term dictionary. Short forms are allowed; database table names, column names and SQL keywords are not.
- Address the provided feedback: the previous phrasing produced an unsatisfying result for the stated reason.
- You must not reproduce the provided question or any question in the question history.
- If the question history has 4 or more entries, abandon incremental edits and try a drastically different rephrasing strategy.

Reply with the rephrased question only.`

const formatterSystemPrompt = `You generate clear, concise natural-language answers from structured data. Given a user's question, the query that was generated for it, and the JSON result of executing that query, produce a short human-readable answer.

Rules:
- Answer the question directly, using only the data in the JSON result.
- Plain prose only: no code, no JSON, no tables.
- The query is context; you do not need to understand it in detail.`

func buildJudgeUserPrompt(question, result string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "SQL Query Result (JSON): %s\n", result)
	return b.String()
}

func buildRefinerUserPrompt(req ports.RephraseRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	fmt.Fprintf(&b, "Feedback: %s\n", req.Feedback)
	b.WriteString("Question History:\n")
	if len(req.History) == 0 {
		b.WriteString("(none)\n")
	}
	for _, q := range req.History {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	b.WriteString("\nTerm Dictionary:\n")
	b.WriteString(req.Dictionary.String())
	b.WriteString("\n")
	return b.String()
}

func buildFormatterUserPrompt(question, query, result string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User Question: %s\n", question)
	if query != domain.EmptyResult && query != "" {
		fmt.Fprintf(&b, "Generated Query: %s\n", query)
	}
	fmt.Fprintf(&b, "Query Result (JSON): %s\n", result)
	return b.String()
}

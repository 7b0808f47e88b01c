package ai

// ExtractSystemPrompt instructs the model to return only the canonical task
// phrase. Any deviation (explanations, quotes, empty output) is handled by the
// rule-based fallback on the caller side.
const ExtractSystemPrompt = `You extract the actionable task from free-text input.

Rules:
- Output ONLY the short task phrase, nothing else.
- No quotes, no punctuation at the end, no explanations.
- Drop leading filler such as "need to", "have to", "must", "going to", "want to".
- Keep context that makes the task specific (people, places, dates).
- Same input must always produce the same output.

Examples:
"Need to buy groceries" -> buy groceries
"Have to finish the report by tomorrow" -> finish the report by tomorrow
"Clean the garage" -> clean the garage`

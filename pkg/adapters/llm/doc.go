/*
Package llm provides judge, refiner and formatter capabilities backed by a
chat-completion model behind the small ChatClient interface. HTTPClient
speaks the Ollama-compatible /api/generate protocol; any other client can be
plugged in by implementing ChatClient.

There is exactly one prompt template per capability; the verdict vocabulary
("Pass" / "Fail: reason") and the refiner's non-repetition and escalation
rules are part of the prompt contracts here, not of the engine.
*/
package llm

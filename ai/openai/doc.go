// Package openai implements the ai.Completer interface using
// OpenAI-compatible chat completion APIs (OpenAI, Ollama, vLLM, LocalAI).
package openai

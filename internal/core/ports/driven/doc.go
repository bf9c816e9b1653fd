// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): tokenization, polarity scoring, text
// generation, history persistence, configuration, and prompt templates.
package driven

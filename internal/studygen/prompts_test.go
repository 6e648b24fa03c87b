package studygen

import (
	"strings"
	"testing"
)

func TestExplainPromptKeepsQuestionForLargeDocument(t *testing.T) {
	doc := strings.Repeat("x", maxDocChars+500)

	prompt := explainPrompt(doc, "What is mitosis?")

	if !strings.Contains(prompt, docTruncationTag) {
		t.Fatal("oversized document not truncated")
	}
	if !strings.Contains(prompt, "Student's question: What is mitosis?") {
		t.Fatal("question lost after document truncation")
	}
	if !strings.HasSuffix(prompt, "relevant context.") {
		t.Fatal("instruction tail lost after document truncation")
	}
}

func TestFlashcardsPromptKeepsFormatInstructionsForLargeDocument(t *testing.T) {
	doc := strings.Repeat("y", 2*maxDocChars)

	prompt := flashcardsPrompt(doc, 10)

	if strings.Count(prompt, "y") != maxDocChars {
		t.Fatalf("document text not capped at %d chars", maxDocChars)
	}
	if !strings.Contains(prompt, `"question" and "answer" fields`) {
		t.Fatal("JSON format instructions lost after document truncation")
	}
}

func TestQuizPromptKeepsFormatInstructionsForLargeDocument(t *testing.T) {
	doc := strings.Repeat("z", 2*maxDocChars)

	prompt := quizPrompt(doc, 5)

	if !strings.HasSuffix(prompt, "just the JSON array.") {
		t.Fatal("JSON format instructions lost after document truncation")
	}
}

func TestSummaryPromptLeavesSmallDocumentIntact(t *testing.T) {
	prompt := summaryPrompt("short body")

	if strings.Contains(prompt, docTruncationTag) {
		t.Fatal("small document must not be truncated")
	}
	if !strings.Contains(prompt, "short body") {
		t.Fatal("document text missing")
	}
}

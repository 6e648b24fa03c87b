package studygen

import "fmt"

// maxDocChars bounds the document text embedded in a prompt. Truncating
// here, before the template is assembled, keeps the instructions after
// the text intact for arbitrarily large documents.
const (
	maxDocChars      = 30000
	docTruncationTag = "...[truncated]"
)

func truncateDoc(text string) string {
	if len(text) <= maxDocChars {
		return text
	}
	return text[:maxDocChars] + docTruncationTag
}

func summaryPrompt(text string) string {
	return fmt.Sprintf(`You are an academic summarization assistant.

Summarize the following content into a clean, well-structured paragraph.

Strict formatting rules:
- Do NOT use markdown.
- Use headings (in plain text, e.g., ALL CAPS).
- Use bullet points (using simple dashes -).
- Do NOT use asterisks (*), hashes (#), or special formatting.
- Divide the response into sections.
- Add titles like OVERVIEW or KEY POINTS.
- Write in plain text only.
- Use formal academic tone.
- Keep the summary concise but complete.
- Do not invent information.
- Do not exaggerate.
- Avoid repetition.
- Ensure logical flow from beginning to conclusion.

Output format:
Return only one or two well-structured paragraphs with clear section titles in plain text.

Content to summarize:
"""
%s
"""`, truncateDoc(text))
}

func explainPrompt(text, question string) string {
	return fmt.Sprintf(`You are a helpful AI learning assistant. Based on the following document content, answer the student's question clearly and thoroughly.

Document content:
%s

Student's question: %s

Provide a clear, detailed answer. If the answer isn't directly in the document, say so but try to provide relevant context.`, truncateDoc(text), question)
}

func flashcardsPrompt(text string, count int) string {
	return fmt.Sprintf(`You are an expert educator. Generate exactly %d flashcards from the following document content for study purposes.

Document content:
%s

Return ONLY a valid JSON array of objects with "question" and "answer" fields. No markdown, no explanation, just the JSON array.
Example format: [{"question": "What is X?", "answer": "X is..."}]`, count, truncateDoc(text))
}

func quizPrompt(text string, count int) string {
	return fmt.Sprintf(`You are an expert educator. Generate exactly %d multiple-choice quiz questions from the following document content.

Document content:
%s

Return ONLY a valid JSON array of objects with these exact fields:
- "question": string (the question)
- "options": string array with exactly 4 options
- "correctAnswer": number (0-3 index of correct option)
- "explanation": string (brief explanation of why the answer is correct)

No markdown, no explanation, just the JSON array.`, count, truncateDoc(text))
}

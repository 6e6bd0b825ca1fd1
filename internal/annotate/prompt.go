package annotate

import "strings"

// buildPrompt wraps the captured text in analysis instructions. The
// few-shot examples anchor the summary length and the tag style.
func buildPrompt(rawText string) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following text from an AI assistant conversation and provide a summary and relevant tags.\n\n")
	sb.WriteString("Instructions:\n")
	sb.WriteString("1. Summary: Create a concise, 1-2 sentence summary of the main point or solution in the text.\n")
	sb.WriteString("2. Tags: Generate 3-8 relevant keywords or phrases that categorize the content. Focus on technologies, concepts, and key terms.\n")
	sb.WriteString("3. Output format: Respond with a valid JSON object: {\"summary\": string, \"tags\": string[], \"confidence\": number between 0.0 and 1.0}.\n\n")

	sb.WriteString("Example 1:\n")
	sb.WriteString("Input: \"Sure - here's how to log to the console in JavaScript... console.log('hi')\"\n")
	sb.WriteString(`Output: {"summary": "Provides a basic JavaScript code snippet for logging 'hi' to the console.", "tags": ["javascript", "example", "console.log", "debugging"], "confidence": 0.95}`)
	sb.WriteString("\n\n")

	sb.WriteString("Example 2:\n")
	sb.WriteString("Input: \"The Model-View-Controller (MVC) is an architectural pattern that separates an application into three main logical components...\"\n")
	sb.WriteString(`Output: {"summary": "Explains the Model-View-Controller (MVC) architectural pattern, which separates applications into model, view, and controller components.", "tags": ["software architecture", "mvc", "design pattern", "programming concepts"], "confidence": 0.98}`)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY the JSON, no other text.\n\n")
	sb.WriteString("Text to process:\n---\n")
	sb.WriteString(rawText)
	sb.WriteString("\n---\n")

	return sb.String()
}

package insight

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxDocumentChars bounds how much extracted text is sent to the model.
const maxDocumentChars = 12000

const insightSpec = `Respond with a JSON object matching this exact structure:

{
  "summary": "<executive summary>",
  "key_findings": ["<finding1>", "<finding2>"],
  "recommendations": ["<recommendation1>"],
  "risk_factors": ["<risk1>"],
  "compliance_status": "<status>",
  "next_steps": ["<step1>"],
  "confidence": 0.0,
  "source_references": ["<source1>"]
}

Field constraints:
- summary: Two to four sentences describing what the document is and the
  most important conclusions of the analysis.
- key_findings: Distinct, concrete findings grounded in the document text.
  Reference specific sections, values, or requirements where possible.
- recommendations: Actionable recommendations for the client, ordered by
  importance. Each recommendation must state the action to take.
- risk_factors: Regulatory, technical, or commercial risks identified in
  the document. Empty array when no material risks are present.
- compliance_status: Short assessment of the document's compliance posture
  against the knowledge sources provided (e.g. "compliant with current
  ANVISA requirements", "gaps identified in stability data").
- next_steps: Concrete follow-up actions in execution order.
- confidence: Number between 0.0 and 1.0 expressing how well the document
  text supported the analysis.
- source_references: Names of the knowledge sources that materially
  informed the findings. Only list sources that were actually used.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Ground every finding in the document text or the listed knowledge sources
- Do not invent regulations, limits, or requirements not present in either`

// composePrompt renders the user prompt for an extraction request. The
// layout is fixed so identical requests produce identical prompts.
func composePrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the following pharmaceutical document.\n\n")
	fmt.Fprintf(&b, "Document: %s\n", req.DocumentName)
	fmt.Fprintf(&b, "Classified as: %s", req.Classification.Type)
	if req.Classification.Subtype != "" {
		fmt.Fprintf(&b, " (%s)", req.Classification.Subtype)
	}
	fmt.Fprintf(&b, ", confidence %.2f\n", req.Classification.Confidence)

	if req.AnalysisType != "" {
		fmt.Fprintf(&b, "Requested analysis: %s\n", req.AnalysisType)
	}

	if req.Prompt != "" {
		fmt.Fprintf(&b, "Analyst instructions: %s\n", req.Prompt)
	}

	if len(req.Sources) > 0 {
		b.WriteString("\nKnowledge sources available for this analysis:\n")
		for _, s := range req.Sources {
			fmt.Fprintf(&b, "- %s: %s\n", s.Name, s.Description)
		}
	}

	if len(req.CrossReferences) > 0 {
		b.WriteString("\nCross-reference checks to perform:\n")
		for _, ref := range req.CrossReferences {
			fmt.Fprintf(&b, "- %s\n", ref)
		}
	}

	b.WriteString("\nDocument text:\n")
	b.WriteString(truncate(req.DocumentText, maxDocumentChars))
	b.WriteString("\n\n")
	b.WriteString(insightSpec)

	return b.String()
}

// truncate cuts text at limit bytes, backing up so a multi-byte rune is
// never split at the boundary.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "\n[document truncated]"
}

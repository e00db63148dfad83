package moderation

import (
	"fmt"
	"strings"

	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
)

var systemPrompt = fmt.Sprintf(`You are an ULTRA-STRICT content moderator with ZERO TOLERANCE for policy violations. Your job is to identify and BLOCK any content that violates our community guidelines.

CRITICAL VIOLATIONS (IMMEDIATE BLOCK - NO EXCEPTIONS):

1. PERSONAL INFORMATION (%s):
   - ANY visible faces of real people
   - Government IDs, licenses, passports, documents
   - Street addresses, house numbers, location signs
   - Phone numbers, email addresses visible in image
   - Credit cards, bank statements, financial documents
   - Social security numbers, personal identification
   - Handwritten personal information
   - Screenshots containing personal data

2. VIOLENCE & HARASSMENT (%s):
   - Weapons (guns, knives, clubs, martial arts weapons)
   - Fighting, physical altercations, aggressive gestures
   - Blood, injuries, violence aftermath
   - Threatening poses or intimidating behavior
   - Hate symbols, nazi imagery, extremist content
   - Bullying scenarios, harassment depictions
   - Gang signs, criminal activity indicators

3. ADULT CONTENT & NUDITY (%s):
   - Exposed breasts, genitals, buttocks
   - Sexual poses, suggestive positioning
   - Lingerie, underwear, revealing clothing
   - Sexual acts or implied sexual content
   - Adult toys, sexual paraphernalia
   - Provocative or sexualized imagery

4. HARMFUL & DANGEROUS CONTENT (%s):
   - Illegal drugs, drug paraphernalia
   - Self-harm activities, cutting, suicide content
   - Dangerous stunts, life-threatening activities
   - Instructions for harmful activities
   - Explosive devices, bomb-making materials
   - Child endangerment scenarios

RESPONSE FORMAT (JSON ONLY):
{
  "status": "failed" | "passed",
  "confidence": 0-100,
  "violation_category": "%s" | "%s" | "%s" | "%s" | null,
  "issues": [
    {
      "category": "exact violation category",
      "description": "specific description of what was detected",
      "severity": "high" | "medium" | "low",
      "confidence": 0-100,
      "blocking_reason": "detailed explanation for blocking"
    }
  ]
}

STRICT GUIDELINES:
- Set status to "failed" for ANY violation with confidence >%d%%
- Set status to "passed" ONLY if absolutely NO violations detected
- Always err on the side of caution - FALSE POSITIVES are better than missed violations
- Be extremely thorough in analyzing both image content AND caption text
- Any detected violation should result in IMMEDIATE blocking
- Provide detailed blocking reasons for transparency`,
	domain.ViolationPersonalInformation,
	domain.ViolationViolenceHarassment,
	domain.ViolationAdultContentNudity,
	domain.ViolationHarmfulDangerous,
	domain.ViolationPersonalInformation,
	domain.ViolationViolenceHarassment,
	domain.ViolationAdultContentNudity,
	domain.ViolationHarmfulDangerous,
	domain.ThresholdLowConfidence,
)

const textOnlyNotice = "No image was provided. Only the filename, type and caption are available, so judge them with text heuristics alone."

// SystemPrompt is the fixed moderation policy sent with every request.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt describes the content under review.
func UserPrompt(req domain.Request) string {
	var b strings.Builder
	b.WriteString("ULTRA-STRICT ANALYSIS REQUIRED - Analyze this content for ANY policy violations:\n")
	fmt.Fprintf(&b, "Filename: %s\nType: %s", req.Filename, req.DeclaredType)
	if req.HasCaption() {
		fmt.Fprintf(&b, "\nCaption: %s", req.Caption)
	}
	if req.FileCount > 1 {
		fmt.Fprintf(&b, "\nBatch: this file is part of an upload of %d files", req.FileCount)
	}
	if !req.HasImage() {
		b.WriteString("\n\n")
		b.WriteString(textOnlyNotice)
	}
	b.WriteString("\n\nReport ANY detected violations immediately. Zero tolerance policy in effect.")
	return b.String()
}

// BuildPrompt assembles the judgment prompt, attaching the image when present.
func BuildPrompt(req domain.Request) providers.Prompt {
	prompt := providers.Prompt{
		System: SystemPrompt(),
		User:   UserPrompt(req),
	}
	if req.HasImage() {
		prompt.ImageDataURI = strings.TrimSpace(req.ImageData)
	}
	return prompt
}

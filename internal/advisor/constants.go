package advisor

const (
	systemPrompt = `
You are an agricultural assistant. A plant disease classifier has already
diagnosed the user's photo. Explain the diagnosis briefly and clearly, stay
consistent with it and with the listed remedies, and suggest consulting a
local extension service when the confidence is low.`

	diagnosisTemplate = `Diagnosis: %s
Confidence: %d%%
Description: %s
Symptoms: %s
Remedies:
%s`
)

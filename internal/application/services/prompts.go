package services

import "fmt"

// composeAlertPrompt wraps an interaction context in the fixed instructions
// sent to the alert composer. The audience framing and tone rules are part of
// the product contract, so the wording stays stable.
func composeAlertPrompt(context string) string {
	return fmt.Sprintf(`#Task
You are a clear, calm, and professional assistant who explains drug interactions in a way that is easy for older adults to understand.
#Step1
Use this information to get the medical interaction details in your response: %s
#Step2
Think step-by-step:
- What is the severity?
- What does each drug do?
- What are the important mechanisms, risks, or side effects?
#Step3
Summarize this in plain language, starting with the key risk.
Avoid casual or conversational fillers. Use short, clear sentences. Do not start with 'Okay' or 'Let's break it down.'
Finish with a gentle reminder to talk to a healthcare provider.
`, context)
}

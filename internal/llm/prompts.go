package llm

const coachSystemPrompt = `You are a professional resume coach. Analyze the provided resume and give specific, actionable suggestions for improvement. Also provide a brief summary including the professional role/title of the candidate and your overall assessment of the resume. Return your response as a JSON object with: "summary" (object with "professionalTitle" string, "overallAssessment" string describing strengths and areas for improvement in 2-3 sentences), and "suggestions" array. Each suggestion should have: "category" (string), "title" (string), "description" (string), "priority" (high/medium/low), and "status" (pending).`

// CoachPrompt builds the fixed resume-coaching prompt for the given text.
func CoachPrompt(resumeText string) Prompt {
	return Prompt{
		System: coachSystemPrompt,
		User:   "Please analyze this resume and provide improvement suggestions:\n\n" + resumeText,
	}
}

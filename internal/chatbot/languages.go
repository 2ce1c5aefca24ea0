package chatbot

// DefaultLanguage is used for any unrecognized language code
const DefaultLanguage = "en"

// languageInstructions open the prompt with the exclusivity rule for each
// supported language. Tests assert these strings appear verbatim.
var languageInstructions = map[string]string{
	"en": "CRITICAL: You MUST respond ONLY in English. Do not use any other language. Do not mix languages.",
	"hi": "CRITICAL: You MUST respond ONLY in Hindi (हिंदी). Do not use English or any other language. Do not mix languages.",
	"kn": "CRITICAL: You MUST respond ONLY in Kannada (ಕನ್ನಡ). Do not use English or any other language. Do not mix languages.",
}

// languageNames label the target language inside the rules section
var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi (हिंदी)",
	"kn": "Kannada (ಕನ್ನಡ)",
}

// apologyMessages substitute an empty generation result
var apologyMessages = map[string]string{
	"en": "I apologize, but I couldn't generate a response. Please try rephrasing your question.",
	"hi": "मुझे खेद है, लेकिन मैं प्रतिक्रिया उत्पन्न नहीं कर सका। कृपया अपने सवाल को फिर से तैयार करने का प्रयास करें।",
	"kn": "ಕ್ಷಮಿಸಿ, ನಾನು ಪ್ರತಿಕ್ರಿಯೆ ರಚಿಸಲು ಸಾಧ್ಯವಾಗಲಿಲ್ಲ. ನಿಮ್ಮ ಪ್ರಶ್ನೆಯನ್ನು ಮರುರೂಪಿಸಲು ಪ್ರಯತ್ನಿಸಿ.",
}

// errorMessages substitute an invocation failure; %s carries the detail
var errorMessages = map[string]string{
	"en": "I'm having trouble processing your question right now (%s). Please try again.",
	"hi": "आपके सवाल को प्रोसेस करने में मुझे समस्या हो रही है (%s)। कृपया फिर से कोशिश करें।",
	"kn": "ನಿಮ್ಮ ಪ್ರಶ್ನೆಯನ್ನು ಪ್ರಕ್ರಿಯೆಗೊಳಿಸುವಲ್ಲಿ ನನಗೆ ಸಮಸ್ಯೆ ಇದೆ (%s). ದಯವಿಟ್ಟು ಮತ್ತೆ ಪ್ರಯತ್ನಿಸಿ.",
}

// normalizeLanguage maps any code onto a supported language
func normalizeLanguage(code string) string {
	if _, ok := languageInstructions[code]; ok {
		return code
	}
	return DefaultLanguage
}

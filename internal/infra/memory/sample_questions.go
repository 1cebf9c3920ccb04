package memory

import "battle-royale-service/internal/domain"

// SampleQuestions is the built-in Kannada vocabulary bank, used when no database is configured
// and by the seed command.
func SampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "kn-hello", Text: `What is the Kannada word for "Hello"?`, Options: []string{"ನಮಸ್ಕಾರ", "ಧನ್ಯವಾದ", "ಹೌದು", "ಇಲ್ಲ"}, CorrectOption: 0, Difficulty: 1},
		{ID: "kn-thanks", Text: `How do you say "Thank you" in Kannada?`, Options: []string{"ನಮಸ್ಕಾರ", "ಧನ್ಯವಾದ", "ದಯವಿಟ್ಟು", "ಕ್ಷಮಿಸಿ"}, CorrectOption: 1, Difficulty: 1},
		{ID: "kn-yes", Text: `What does "ಹೌದು" mean in English?`, Options: []string{"No", "Maybe", "Yes", "Please"}, CorrectOption: 2, Difficulty: 1},
		{ID: "kn-good-morning", Text: `Translate "Good morning" to Kannada:`, Options: []string{"ಶುಭ ರಾತ್ರಿ", "ಶುಭೋದಯ", "ಶುಭ ಸಂಜೆ", "ನಮಸ್ಕಾರ"}, CorrectOption: 1, Difficulty: 2},
		{ID: "kn-water", Text: `What is "Water" in Kannada?`, Options: []string{"ಹಾಲು", "ನೀರು", "ಚಹಾ", "ಕಾಫಿ"}, CorrectOption: 1, Difficulty: 1},
		{
			ID:   "kn-learning",
			Text: `How do you say "I am learning Kannada"?`,
			Options: []string{
				"ನಾನು ಕನ್ನಡ ಕಲಿಯುತ್ತಿದ್ದೇನೆ",
				"ನಾನು ಕನ್ನಡ ಮಾತನಾಡುತ್ತೇನೆ",
				"ನಾನು ವಿದ್ಯಾರ್ಥಿ",
				"ನಾನು ಶಿಕ್ಷಕ",
			},
			CorrectOption: 0,
			Difficulty:    3,
		},
		{ID: "kn-karnataka", Text: `What does "ಕರ್ನಾಟಕ" refer to?`, Options: []string{"A language", "A state", "A city", "A festival"}, CorrectOption: 1, Difficulty: 2},
		{ID: "kn-food", Text: `Translate "Food" to Kannada:`, Options: []string{"ಊಟ", "ತಿಂಡಿ", "ಭೋಜನ", "ಹಣ್ಣು"}, CorrectOption: 0, Difficulty: 2},
		{
			ID:   "kn-how-are-you",
			Text: `What is the correct way to say "How are you?" in Kannada?`,
			Options: []string{
				"ನೀವು ಹೇಗಿದ್ದೀರಿ?",
				"ನಾನು ಚೆನ್ನಾಗಿದ್ದೇನೆ",
				"ಧನ್ಯವಾದ",
				"ನಮಸ್ಕಾರ",
			},
			CorrectOption: 0,
			Difficulty:    2,
		},
		{ID: "kn-book", Text: `What does "ಪುಸ್ತಕ" mean?`, Options: []string{"Pen", "Book", "Paper", "Bag"}, CorrectOption: 1, Difficulty: 1},
	}
}

package services

import "strings"

// IdentityResponse is the canned reply for questions about the assistant's
// name. These never reach the upstream model.
const IdentityResponse = "I am a large language model, trained by OXT. My name is OXT."

// nameQueries are matched as case-insensitive substrings of the current
// message only, never of the history.
var nameQueries = []string{
	"what is your name",
	"what's your name",
	"who are you",
	"your name",
	"do you have a name",
	"what do i call you",
	"cual es tu nombre", // Spanish
	"como te llamas",    // Spanish
	"quel est ton nom",  // French
	"comment t'appelles-tu", // French
	"wie heißt du",      // German
	"dein name",         // German
	"qual é o seu nome", // Portuguese
	"come ti chiami",    // Italian
	"il tuo nome",       // Italian
	"あなたの名前は",    // Japanese
	"너의 이름은 무엇이니", // Korean
	"你叫什么名字",      // Chinese (Mandarin)
	"你個名係乜",        // Chinese (Cantonese)
	"как тебя зовут",    // Russian
	"ما اسمك",           // Arabic
	"اسمك اي",           // Arabic (informal)
	"من أنت",            // Arabic (Who are you?)
	"شو اسمك",           // Arabic (Levantine informal)
	"ايش اسمك",          // Arabic (Gulf informal)
	"هل لديك اسم",       // Arabic (Do you have a name?)
	"بماذا أناديك",      // Arabic (What should I call you?)
	"ماذا تدعى",         // Arabic (What are you called?)
	"adın ne",           // Turkish
	"आपका नाम क्या है", // Hindi
}

// IsNameQuery reports whether the message asks for the assistant's name.
func IsNameQuery(message string) bool {
	lower := strings.ToLower(message)
	for _, q := range nameQueries {
		if strings.Contains(lower, q) {
			return true
		}
	}
	return false
}

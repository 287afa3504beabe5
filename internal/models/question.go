package models

// Difficulty represents the challenge level of a question or AI opponent
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyVeryHard Difficulty = "very-hard"
)

// Difficulties lists all difficulties in ascending order
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyVeryHard}
}

// Valid returns true if the difficulty is a known value
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyVeryHard:
		return true
	}
	return false
}

// Points returns the score weight for a question of this difficulty
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 20
	case DifficultyHard:
		return 30
	case DifficultyVeryHard:
		return 40
	}
	return 0
}

// Subject is a topic category for quiz content
type Subject string

const (
	SubjectMathematics Subject = "Mathematics"
	SubjectScience     Subject = "Science"
	SubjectProgramming Subject = "Programming"
	SubjectHistory     Subject = "History"
	SubjectGeography   Subject = "Geography"
)

// Subjects lists all supported subjects
func Subjects() []Subject {
	return []Subject{SubjectMathematics, SubjectScience, SubjectProgramming, SubjectHistory, SubjectGeography}
}

// Valid returns true if the subject is a known value
func (s Subject) Valid() bool {
	switch s {
	case SubjectMathematics, SubjectScience, SubjectProgramming, SubjectHistory, SubjectGeography:
		return true
	}
	return false
}

// Question is an immutable multiple-choice quiz question.
// Answer must be one of Options; questions are never mutated after construction.
type Question struct {
	Text        string     `json:"question" yaml:"question"`
	Options     []string   `json:"options" yaml:"options"`
	Answer      string     `json:"answer" yaml:"answer"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Subject     Subject    `json:"subject" yaml:"subject"`
	Explanation string     `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// HasAnswer reports whether the correct answer is present in the options list
func (q *Question) HasAnswer() bool {
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}

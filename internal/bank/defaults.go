package bank

import (
	"github.com/mindly-app/duel-engine/internal/models"
)

// defaultQuestions returns the embedded fallback set. Every subject and
// difficulty is covered so a full duel can always assemble offline.
func defaultQuestions() []models.Question {
	return []models.Question{
		// Mathematics
		{Text: "What is 15 multiplied by 4?", Options: []string{"50", "60", "70", "80"}, Answer: "60", Difficulty: models.DifficultyEasy, Subject: models.SubjectMathematics},
		{Text: "What is 100 minus 37?", Options: []string{"61", "63", "65", "67"}, Answer: "63", Difficulty: models.DifficultyEasy, Subject: models.SubjectMathematics},
		{Text: "What is the square root of 144?", Options: []string{"10", "11", "12", "14"}, Answer: "12", Difficulty: models.DifficultyMedium, Subject: models.SubjectMathematics},
		{Text: "What is 15% of 200?", Options: []string{"25", "30", "35", "40"}, Answer: "30", Difficulty: models.DifficultyMedium, Subject: models.SubjectMathematics},
		{Text: "What is the derivative of x^2?", Options: []string{"x", "2x", "x^2", "2"}, Answer: "2x", Difficulty: models.DifficultyHard, Subject: models.SubjectMathematics, Explanation: "The power rule gives d/dx(x^n) = n*x^(n-1)."},
		{Text: "What is the sum of interior angles of a hexagon?", Options: []string{"540°", "630°", "720°", "810°"}, Answer: "720°", Difficulty: models.DifficultyHard, Subject: models.SubjectMathematics, Explanation: "(n-2) × 180° with n = 6."},
		{Text: "What is the value of e (Euler's number) to two decimal places?", Options: []string{"2.71", "2.72", "3.14", "1.61"}, Answer: "2.72", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectMathematics, Explanation: "e ≈ 2.71828, which rounds to 2.72."},
		{Text: "How many distinct prime numbers are there below 20?", Options: []string{"6", "7", "8", "9"}, Answer: "8", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectMathematics, Explanation: "2, 3, 5, 7, 11, 13, 17 and 19."},

		// Science
		{Text: "Which planet is known as the Red Planet?", Options: []string{"Earth", "Venus", "Mars", "Jupiter"}, Answer: "Mars", Difficulty: models.DifficultyEasy, Subject: models.SubjectScience},
		{Text: "What gas do plants absorb from the atmosphere?", Options: []string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"}, Answer: "Carbon Dioxide", Difficulty: models.DifficultyEasy, Subject: models.SubjectScience},
		{Text: "What is the chemical symbol for gold?", Options: []string{"Go", "Gd", "Au", "Ag"}, Answer: "Au", Difficulty: models.DifficultyMedium, Subject: models.SubjectScience, Explanation: "From the Latin aurum."},
		{Text: "What is the most abundant gas in Earth's atmosphere?", Options: []string{"Oxygen", "Carbon Dioxide", "Nitrogen", "Argon"}, Answer: "Nitrogen", Difficulty: models.DifficultyMedium, Subject: models.SubjectScience},
		{Text: "What particle has a positive charge?", Options: []string{"Electron", "Proton", "Neutron", "Photon"}, Answer: "Proton", Difficulty: models.DifficultyHard, Subject: models.SubjectScience},
		{Text: "What is the speed of light in a vacuum?", Options: []string{"300,000 km/s", "150,000 km/s", "1,000,000 km/s", "30,000 km/s"}, Answer: "300,000 km/s", Difficulty: models.DifficultyHard, Subject: models.SubjectScience, Explanation: "Approximately 299,792 km/s."},
		{Text: "Which quantum number describes the shape of an atomic orbital?", Options: []string{"Principal", "Azimuthal", "Magnetic", "Spin"}, Answer: "Azimuthal", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectScience},
		{Text: "What is the half-life of Carbon-14?", Options: []string{"1,460 years", "5,730 years", "14,600 years", "57,300 years"}, Answer: "5,730 years", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectScience},

		// Programming
		{Text: "What does HTML stand for?", Options: []string{"HyperText Markup Language", "HighText Machine Language", "HyperTool Multi Language", "HomeText Markup Language"}, Answer: "HyperText Markup Language", Difficulty: models.DifficultyEasy, Subject: models.SubjectProgramming},
		{Text: "Which symbol starts a comment in Python?", Options: []string{"//", "#", "/*", "--"}, Answer: "#", Difficulty: models.DifficultyEasy, Subject: models.SubjectProgramming},
		{Text: "What data structure uses LIFO ordering?", Options: []string{"Queue", "Stack", "Array", "Tree"}, Answer: "Stack", Difficulty: models.DifficultyMedium, Subject: models.SubjectProgramming, Explanation: "Last in, first out."},
		{Text: "What does SQL stand for?", Options: []string{"Structured Query Language", "Simple Question Language", "Standard Quality Language", "Sequential Query Logic"}, Answer: "Structured Query Language", Difficulty: models.DifficultyMedium, Subject: models.SubjectProgramming},
		{Text: "What is the average time complexity of binary search?", Options: []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"}, Answer: "O(log n)", Difficulty: models.DifficultyHard, Subject: models.SubjectProgramming, Explanation: "The search space halves on every comparison."},
		{Text: "Which sorting algorithm has the best worst-case time complexity?", Options: []string{"Quicksort", "Bubble sort", "Merge sort", "Insertion sort"}, Answer: "Merge sort", Difficulty: models.DifficultyHard, Subject: models.SubjectProgramming, Explanation: "Merge sort is O(n log n) even in the worst case."},
		{Text: "In distributed systems, what does the CAP theorem NOT include?", Options: []string{"Consistency", "Availability", "Partition tolerance", "Durability"}, Answer: "Durability", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectProgramming},
		{Text: "What problem does the Paxos algorithm solve?", Options: []string{"Consensus", "Sorting", "Routing", "Encryption"}, Answer: "Consensus", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectProgramming},

		// History
		{Text: "In which year did World War II end?", Options: []string{"1943", "1944", "1945", "1946"}, Answer: "1945", Difficulty: models.DifficultyEasy, Subject: models.SubjectHistory},
		{Text: "Who was the first President of the United States?", Options: []string{"Thomas Jefferson", "George Washington", "Abraham Lincoln", "John Adams"}, Answer: "George Washington", Difficulty: models.DifficultyEasy, Subject: models.SubjectHistory},
		{Text: "Which empire was ruled by Julius Caesar?", Options: []string{"Greek", "Roman", "Ottoman", "Persian"}, Answer: "Roman", Difficulty: models.DifficultyMedium, Subject: models.SubjectHistory},
		{Text: "In which year did the Berlin Wall fall?", Options: []string{"1987", "1988", "1989", "1991"}, Answer: "1989", Difficulty: models.DifficultyMedium, Subject: models.SubjectHistory},
		{Text: "Which treaty ended World War I?", Options: []string{"Treaty of Versailles", "Treaty of Paris", "Treaty of Vienna", "Treaty of Rome"}, Answer: "Treaty of Versailles", Difficulty: models.DifficultyHard, Subject: models.SubjectHistory, Explanation: "Signed in June 1919."},
		{Text: "Who was the last Tsar of Russia?", Options: []string{"Alexander III", "Nicholas II", "Peter the Great", "Ivan IV"}, Answer: "Nicholas II", Difficulty: models.DifficultyHard, Subject: models.SubjectHistory},
		{Text: "Which dynasty built most of the Great Wall of China as it stands today?", Options: []string{"Qin", "Han", "Ming", "Tang"}, Answer: "Ming", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectHistory},
		{Text: "In which year was the Magna Carta sealed?", Options: []string{"1066", "1215", "1348", "1453"}, Answer: "1215", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectHistory},

		// Geography
		{Text: "What is the capital of France?", Options: []string{"Berlin", "Paris", "Madrid", "Rome"}, Answer: "Paris", Difficulty: models.DifficultyEasy, Subject: models.SubjectGeography},
		{Text: "What is the largest ocean on Earth?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, Answer: "Pacific", Difficulty: models.DifficultyEasy, Subject: models.SubjectGeography},
		{Text: "Which is the longest river in the world?", Options: []string{"Amazon", "Nile", "Yangtze", "Mississippi"}, Answer: "Nile", Difficulty: models.DifficultyMedium, Subject: models.SubjectGeography},
		{Text: "Which desert is the largest hot desert in the world?", Options: []string{"Gobi", "Kalahari", "Sahara", "Mojave"}, Answer: "Sahara", Difficulty: models.DifficultyMedium, Subject: models.SubjectGeography},
		{Text: "What is the capital of Australia?", Options: []string{"Sydney", "Melbourne", "Canberra", "Perth"}, Answer: "Canberra", Difficulty: models.DifficultyHard, Subject: models.SubjectGeography, Explanation: "Canberra was chosen as a compromise between Sydney and Melbourne."},
		{Text: "Which country has the most time zones?", Options: []string{"Russia", "USA", "France", "China"}, Answer: "France", Difficulty: models.DifficultyHard, Subject: models.SubjectGeography, Explanation: "Twelve, counting its overseas territories."},
		{Text: "What is the deepest point in the world's oceans?", Options: []string{"Tonga Trench", "Challenger Deep", "Puerto Rico Trench", "Java Trench"}, Answer: "Challenger Deep", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectGeography, Explanation: "In the Mariana Trench, roughly 10,900 m down."},
		{Text: "Which African country was never colonized by a European power?", Options: []string{"Kenya", "Ethiopia", "Ghana", "Nigeria"}, Answer: "Ethiopia", Difficulty: models.DifficultyVeryHard, Subject: models.SubjectGeography},
	}
}

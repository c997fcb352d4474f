// internal/game/engine.go
//
// Judgment function: the feedback a player sees for a guess against a goal.
//
// Pass 1:
//   - Mark exact matches Correct; those goal letters are consumed.
//   - Count the remaining (non-correct) goal letters.
//
// Pass 2:
//   - Left to right over non-correct positions: if the guessed letter still
//     has a remaining count, mark Misplaced and decrement; otherwise Incorrect.
//
// Correct is always resolved before Misplaced, and the lowest index consumes a
// repeated letter first, so a letter guessed twice against a goal holding it
// once yields exactly one Misplaced.
package game

// Judge compares guess against goal. Both must have the same length.
func Judge(guess, goal Word) WordJudgment {
	n := len(guess)
	res := make(WordJudgment, n)
	judgeInto(res, guess, goal)
	return res
}

// JudgeFeedback is Judge followed by Encode without keeping the judgment.
func JudgeFeedback(guess, goal Word) Feedback {
	var buf [MaxWordLength]LetterJudgment
	n := len(guess)
	if n > MaxWordLength {
		return Judge(guess, goal).Encode()
	}
	res := WordJudgment(buf[:n])
	judgeInto(res, guess, goal)
	return res.Encode()
}

func judgeInto(res WordJudgment, guess, goal Word) {
	n := len(guess)

	// Remaining goal letters by byte value.
	var counts [256]uint8

	for i := 0; i < n; i++ {
		if guess[i] == goal[i] {
			res[i] = Correct
		} else {
			res[i] = Incorrect
			counts[goal[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		c := guess[i]
		if counts[c] > 0 {
			res[i] = Misplaced
			counts[c]--
		}
	}
}

package score

// BasicCriticPrompt asks for a bare 0-100 rating.
const BasicCriticPrompt = "Rate the aesthetic quality of this graphic design on a scale from 0 to 100. " +
	"Consider factors like visual balance, color harmony, typography, composition, and overall design quality. " +
	"Respond with ONLY a number between 0 and 100, nothing else."

// RubricCriticPrompt asks for a weighted-rubric judgment and a JSON reply
// carrying the integer score plus a short rationale.
const RubricCriticPrompt = `You are a meticulous human-like graphic design critic. Given a single image of a designed layout (poster, social tile, ad, slide, etc.), silently evaluate overall quality as a person would - holistically, not by rules alone - then produce one integer from 0-100.

Evaluate using the rubric below (weights sum to 100). Reward clarity, craft, and effectiveness; penalize obvious defects.

1) Purpose & message clarity (15)
2) Visual hierarchy & information architecture (12)
3) Typography & legibility (12)
4) Alignment & grid discipline (8)
5) Spacing & breathing room (8)
6) Consistency of styles (6)
7) Contrast & accessibility (8)
8) Color harmony & tone (6)
9) Imagery quality & relevance (6)
10) Iconography & semantics (6)
11) Balance, rhythm & flow (6)
12) Craft/technical execution (5)
13) Originality & polish (2)

Penalize when present: uneven distribution, misalignment, inconsistent fonts/colors/styles, nonsensical scale or hierarchy, crowding, text/image overflow or cropping, poor contrast, undesired overlaps, illegible small text, low-res imagery, broken grids, color clashes.

Scoring: judge holistically first, then adjust with the rubric. 0 = unusable/chaotic; 50 = serviceable but clearly flawed; 75 = good with minor issues; 90 = excellent; 100 = exemplary. If the image is blank or unreadable, score 0.

Reply with JSON only: {"score": <integer 0-100>, "rationale": "<one or two sentences>"}`

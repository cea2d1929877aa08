// Package trivia turns artist names into fill-in-the-blank quiz questions.
//
// The pipeline has three layers:
//
//  1. Corpus helpers: [StripPunctuation], [IsStopWord], [FilterStopWords]
//     normalize free text for comparison.
//  2. [Resolver] : disambiguates a free-text artist name against the Genius
//     search index using exact match, majority voting, and stop-word-filtered
//     set intersection.
//  3. [Synthesizer] : fetches the resolved artist's biography, redacts every
//     occurrence of the artist's significant name words, and picks one
//     surviving sentence as the question text.
//
// Resolution is a best-effort heuristic; callers treat [shared.ErrResolutionFailed]
// and [shared.ErrSynthesisFailed] as skippable, not fatal.
package trivia

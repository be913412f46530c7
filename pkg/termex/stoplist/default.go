package stoplist

// defaultWords is used when no stoplist file is configured or the configured
// one cannot be read.
var defaultWords = []string{
	"a", "about", "above", "across", "after", "again", "against", "all",
	"almost", "alone", "along", "already", "also", "although", "always", "am",
	"among", "an", "and", "another", "any", "anyone", "anything", "are",
	"around", "as", "at", "be", "became", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "cannot",
	"could", "did", "do", "does", "doing", "done", "down", "due", "during",
	"each", "either", "else", "enough", "etc", "even", "ever", "every",
	"few", "for", "from", "further", "had", "has", "have", "having", "he",
	"her", "here", "hers", "herself", "him", "himself", "his", "how",
	"however", "i", "if", "in", "into", "is", "it", "its", "itself", "just",
	"least", "less", "many", "may", "me", "might", "more", "most", "much",
	"must", "my", "myself", "neither", "no", "nor", "not", "now", "of",
	"off", "often", "on", "once", "one", "only", "or", "other", "others",
	"our", "ours", "ourselves", "out", "over", "own", "per", "perhaps",
	"rather", "same", "several", "she", "should", "since", "so", "some",
	"such", "than", "that", "the", "their", "theirs", "them", "themselves",
	"then", "there", "therefore", "these", "they", "this", "those",
	"though", "through", "thus", "to", "too", "under", "until", "up",
	"upon", "us", "very", "via", "was", "we", "were", "what", "whatever",
	"when", "where", "whether", "which", "while", "who", "whom", "whose",
	"why", "will", "with", "within", "without", "would", "yet", "you",
	"your", "yours", "yourself", "yourselves",
	"'s", "'", "-", "(", ")", "[", "]", ",", ".", ";", ":", "%", "/",
}

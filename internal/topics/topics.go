// Package topics assigns coarse content-category labels to viewing events by
// keyword matching on the video title and channel name.
package topics

import "strings"

// rule pairs a topic label with the lowercase keywords that select it.
// The table is fixed and ordered; Classify returns matches in table order so
// the same (title, channel) pair always yields the same label list.
type rule struct {
	label    string
	keywords []string
}

var rules = []rule{
	{"Music", []string{"official video", "official audio", "music video", "lyrics", "remix", "album", "vevo", "concert", " ft.", " feat"}},
	{"Gaming", []string{"gameplay", "playthrough", "speedrun", "minecraft", "fortnite", "elden ring", "zelda", "walkthrough", "gaming", "esports", "twitch"}},
	{"Tech", []string{"programming", "coding", "software", "developer", "linux", "python", "javascript", "golang", "review", "unboxing", "benchmark", "tutorial"}},
	{"Science & Education", []string{"science", "physics", "chemistry", "biology", "history", "documentary", "explained", "lecture", "veritasium", "kurzgesagt", "how it works"}},
	{"News & Politics", []string{"news", "politics", "election", "breaking", "interview", "debate", "press conference"}},
	{"Sports", []string{"highlights", "nba", "nfl", "mlb", "premier league", "champions league", "ufc", "f1", "olympics", "match", "vs."}},
	{"Food & Cooking", []string{"recipe", "cooking", "baking", "kitchen", "chef", "food", "restaurant", "taste test"}},
	{"Fitness & Health", []string{"workout", "fitness", "yoga", "exercise", "gym", "nutrition", "meditation"}},
	{"Travel", []string{"travel", "vlog", "tour", "visiting", "trip to", "exploring"}},
	{"Comedy", []string{"comedy", "stand-up", "standup", "funny", "sketch", "snl", "parody", "meme"}},
	{"Movies & TV", []string{"trailer", "movie", "episode", "season", "netflix", "behind the scenes", "film"}},
	{"Podcasts", []string{"podcast", "full episode", "joe rogan", "lex fridman"}},
	// "crafts" not "craft": the bare form substring-matches Minecraft,
	// Warcraft and friends.
	{"DIY & Crafts", []string{"diy", "woodworking", "how to make", "restoration", "crafts", "handmade", "build"}},
	{"Finance", []string{"investing", "stock market", "crypto", "bitcoin", "personal finance", "real estate"}},
}

// Classify maps a (title, channel) pair to zero or more topic labels. It is a
// pure function: the same inputs always produce the same labels in the same
// order. A topic is included when any of its keywords appears, case
// insensitively, in either the title or the channel name. No match returns
// nil; the aggregation engine treats "no topic" as its own bucket.
func Classify(title, channel string) []string {
	if title == "" && channel == "" {
		return nil
	}

	haystack := strings.ToLower(title) + "\n" + strings.ToLower(channel)

	var labels []string
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(haystack, kw) {
				labels = append(labels, r.label)
				break
			}
		}
	}
	return labels
}

// Labels returns every known topic label in table order.
func Labels() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.label
	}
	return out
}

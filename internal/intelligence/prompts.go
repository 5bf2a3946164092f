package intelligence

import "fmt"

const insightSystemPrompt = `You are the voice of a personal leveling system.
Reply with plain text only: two or three short sentences, no markdown, no quotes.`

// insightUserPrompt asks for a level-up notification for the given level.
func insightUserPrompt(level int) string {
	return fmt.Sprintf("The user just leveled up to Level %d in their personal leveling system. "+
		"Provide a short, motivational, and thematic message (like a system notification) "+
		"congratulating them and giving a brief, inspiring thought for their continued journey. "+
		"Do not explicitly mention 'Solo Leveling' or 'manhwa' in the message itself, "+
		"but keep the tone similar to system messages from a powerful leveling system.", level)
}

const questsSystemPrompt = `You generate daily quests for a personal leveling system.
Output ONLY a JSON array. No prose, no markdown fences, no comments.`

const questsUserPrompt = `Generate 3-5 daily activities or 'quests' for a personal leveling system. ` +
	`Each quest should have a name and a suggested XP value. ` +
	`Focus on activities related to personal growth, coding, and well-being. ` +
	`Format as a JSON array of objects with 'name' (string) and 'xp' (number) keys. ` +
	`Example: [{"name": "Meditate for 15 minutes", "xp": 15}]`

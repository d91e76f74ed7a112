package experiment

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

// KeyGenerator returns the completion word shown to a participant.
type KeyGenerator func() string

// DefaultWordList is used when no word list file is configured.
var DefaultWordList = []string{
	"amber", "anchor", "badger", "basket", "beacon", "bramble", "candle", "canyon",
	"cedar", "clover", "cobalt", "comet", "copper", "crater", "dahlia", "ember",
	"falcon", "fennel", "fjord", "garnet", "glacier", "harbor", "hazel", "heron",
	"indigo", "island", "jasper", "juniper", "kettle", "lantern", "lemon", "lilac",
	"maple", "marble", "meadow", "nectar", "nutmeg", "orchid", "otter", "pebble",
	"pepper", "quartz", "quill", "raven", "ribbon", "saffron", "sparrow", "spruce",
	"thistle", "timber", "tulip", "velvet", "violet", "walnut", "willow", "zephyr",
}

// NewWordKeys picks a random word from words for every call.
func NewWordKeys(words []string) (KeyGenerator, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	list := append([]string(nil), words...)
	return func() string {
		return list[rand.IntN(len(list))]
	}, nil
}

// LoadWordList reads one word per line. Blank lines and lines starting with
// # are skipped.
func LoadWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

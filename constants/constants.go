package constants

import "os"

func GetLibraryDir() string {
	path := os.Getenv("LIBRARY_PATH")
	if path != "" {
		return path
	}
	return "./melodies"
}

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// Lowest frequency the piezo buzzers we target can actually produce.
const MinFrequency = 31

const SampleRate = 44100

// bytes per note in a firmware table: 2 for frequency, 4 for offset, 4 for duration
const NoteSize = 10

const DefaultTableName = "MY_MELODY"

const DynamoTable = "buzzer-melodies"

// NOTE: keys in redis/memory are prefixed so several boards can share one redis
const OneShotPrefix = "buzzer:played:"

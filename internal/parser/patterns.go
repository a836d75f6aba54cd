package parser

import "regexp"

// Compiled patterns for the numeric extended notices. Each is anchored at
// both ends so a match consumes the whole notice.
var (
	// "Total scripts in region jumped from 2201 to 2250 (+49)."
	// Captures: (1) previous, (2) current, (3) sign, (4) difference
	scriptCountPattern = regexp.MustCompile(
		`^Total scripts in region (?:jumped|dropped) from (\d+) to (\d+) \(([+-])(\d+)\)\.$`,
	)

	// "Link failed -- Unable to link 3 of the 7 selected pieces - pieces are too far apart."
	// Captures: (1) failed pieces, (2) selected pieces
	linkFailedPattern = regexp.MustCompile(
		`^Link failed -- Unable to link (\d+) of the (\d+) selected pieces - pieces are too far apart\.$`,
	)

	// "You have been banned for 30 minutes"
	// Captures: (1) minutes
	bannedForPattern = regexp.MustCompile(
		`^You have been banned for (\d+) minutes\.?$`,
	)

	// "Your object 'Box' has been returned to your inventory Lost and Found folder from parcel 'Home' at Ahern 120, 80 due to parcel auto return."
	// Captures: (1) object, (2) parcel, (3) region, (4) x, (5) y, (6) auto return suffix
	objectReturnedPattern = regexp.MustCompile(
		`^Your object '(.*?)' has been returned to your inventory Lost and Found folder from parcel '(.*?)' at (.+?)\s+(-?\d+), (-?\d+)( due to parcel auto return)?\.$`,
	)

	// "Script info: 'Bob Smith': [12/14] running scripts, 896 KB allowed memory size limit, 0.25 ms of CPU time consumed."
	// Captures: (1) name, (2) running, (3) total, (4) memory KB, (5) CPU ms
	scriptInfoPattern = regexp.MustCompile(
		`^Script info: '(.*?)': \[(\d+)/(\d+)\] running scripts, (\d+) KB allowed memory size limit, (\d+(?:\.\d+)?) ms of CPU time consumed\.$`,
	)

	// "#1 1d6: 4."
	// Captures: (1) roll number, (2) faces, (3) result
	diceRollPattern = regexp.MustCompile(`^#(\d+)\s*1d(\d+):\s*(\d+)\.$`)

	// "Total result for 3d6: 11."
	// Captures: (1) rolls, (2) faces, (3) sum
	diceSumPattern = regexp.MustCompile(`^Total result for (\d+)d(\d+):\s*(\d+)\.$`)

	// "512x512 opaque on face 0"
	// Captures: (1) width, (2) height, (3) texture type, (4) face
	textureFacePattern = regexp.MustCompile(`^(\d+)x(\d+)\s*(opaque|alpha) on face (\d+)$`)

	// Start of a link in a message of the day style notice.
	linkPattern = regexp.MustCompile(`(?:[Hh]ttps?://|www\.)\S+$`)
)

// startupPrefixes are the progress notices a viewer logs while connecting,
// all ending in "...".
var startupPrefixes = []string{
	"Loading", "Initializing", "Downloading", "Verifying",
	"Connecting", "Decoding", "Waiting",
}

// Package slchatlog parses and follows Second Life viewer chat logs.
//
// Viewers such as Firestorm write local chat, presence notices and system
// messages to a chat.txt per avatar:
//
//	[2024/01/15 23:59:59]  Jane Doe: hello there
//	[2024/01/15 23:59:59]  Jane Doe is online.
//	[2024/01/15 23:59:59]  Second Life: Teleport completed from http://slurl.com/secondlife/Ahern/128/128/23
//
// Every correctly framed line parses into an [event.ChatLogLine]; the only
// parse failure is a malformed timestamp, reported as a [*FramingError].
//
// # Basic Usage
//
// To parse a single logical line:
//
//	line, err := slchatlog.ParseLine(text)
//	if err != nil {
//	    log.Printf("framing error: %v", err)
//	    return
//	}
//	fmt.Println(line.Type())
//
// To parse a whole file, with continuation lines joined:
//
//	for entry, err := range slchatlog.ParseFile(ctx, "chat.txt") {
//	    if err != nil {
//	        log.Printf("skipping: %v", err)
//	        continue
//	    }
//	    fmt.Println(entry.Line.Type(), entry.Line.Name())
//	}
//
// To follow the chat log of the running viewer:
//
//	w, err := slchatlog.NewWatcher(slchatlog.WithAvatar("Jane Doe"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//	entries, errs, err := w.Watch(ctx)
//
// # Grammars
//
// The default grammar recognizes the common system notices and degrades
// everything else to [event.OtherSystemMessage]. [WithExtendedSystemMessages]
// adds many more notice shapes, and [WithSystemShapes] accepts custom ones,
// for example from YAML files loaded by the [pattern] subpackage.
// [Reclassify] applies further shapes to lines parsed earlier.
//
// # Disclaimer
//
// This is an unofficial tool and is not affiliated with Linden Research.
package slchatlog

package demo

import "time"

type sampleMessage struct {
	role   string
	text   string
	offset time.Duration
}

type sampleThread struct {
	name     string
	messages []sampleMessage
}

var baseTime = time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)

var sampleThreads = []sampleThread{
	{
		name: "welcome-tour",
		messages: []sampleMessage{
			{
				role: "user",
				text: "How do I highlight something in this reader?",
			},
			{
				role: "assistant",
				text: "Drag across any passage with the mouse, or press v to start a " +
					"keyboard selection and move with j/k. When you release (or press " +
					"enter), a small menu appears next to the selection.\n\n" +
					"Pick Highlight to mark the passage. Highlighted text gets a subtle " +
					"background; pick the same range again to remove it.",
				offset: 45 * time.Second,
			},
			{
				role: "user",
				text: "And notes? I want to attach a comment to a highlight so I " +
					"remember why I marked it.",
				offset: 2 * time.Minute,
			},
			{
				role: "assistant",
				text: "Click an existing highlight and choose Annotate from the menu. " +
					"Annotated highlights are underlined and drawn in a warmer shade, " +
					"and hovering them shows the note in a tooltip.\n\n" +
					"A few other things worth knowing:\n\n" +
					"- `s` stars the message under the cursor\n" +
					"- `c` collapses a long message down to one line\n" +
					"- `y` copies the selection to the clipboard\n" +
					"- `z` zooms a message into a full-screen markdown view\n\n" +
					"Everything you mark survives re-exports of the transcript, because " +
					"positions are stored against the message text, not the screen.",
				offset: 3 * time.Minute,
			},
			{
				role:   "user",
				text:   "Where does all of that get saved?",
				offset: 5 * time.Minute,
			},
			{
				role: "assistant",
				text: "In a local SQLite database under your config directory, keyed by a " +
					"fingerprint of each message. Delete a transcript file and re-export " +
					"it later and your highlights come back, as long as the message text " +
					"is unchanged.",
				offset: 5*time.Minute + 30*time.Second,
			},
		},
	},
	{
		name: "goroutine-leak-debugging",
		messages: []sampleMessage{
			{
				role: "user",
				text: "Our service's goroutine count grows steadily under load and never " +
					"comes back down. pprof shows thousands parked in chanrecv. What are " +
					"the usual suspects?",
			},
			{
				role: "assistant",
				text: "Thousands parked in `chanrecv` almost always means receivers " +
					"waiting on channels nobody closes or sends to anymore. The common " +
					"patterns:\n\n" +
					"1. **Abandoned fan-out workers.** A request spawns workers reading " +
					"from a channel, the request errors out early, and nothing closes " +
					"the channel. The workers wait forever.\n" +
					"2. **Missing context propagation.** A goroutine blocks on `<-ch` " +
					"with no `case <-ctx.Done()` alongside it, so cancellation never " +
					"reaches it.\n" +
					"3. **Unbuffered reply channels.** The requester times out and " +
					"walks away; the responder blocks forever trying to send the reply.\n\n" +
					"Grab a full goroutine dump (`pprof/goroutine?debug=2`) and group " +
					"the stacks. The leak is usually one or two call sites repeated " +
					"thousands of times.",
				offset: time.Minute,
			},
			{
				role: "user",
				text: "It's pattern 3. The handler does result := make(chan Result) and " +
					"the worker sends on it, but the handler selects on the context too " +
					"and returns early. How do I fix the worker side?",
				offset: 4 * time.Minute,
			},
			{
				role: "assistant",
				text: "Two idiomatic fixes, pick either:\n\n" +
					"**Buffer of one.** `make(chan Result, 1)` lets the worker's send " +
					"always complete even if nobody reads. The abandoned value is " +
					"garbage collected with the channel.\n\n" +
					"**Select on both sides.** The worker sends inside a select:\n\n" +
					"```go\n" +
					"select {\n" +
					"case result <- r:\n" +
					"case <-ctx.Done():\n" +
					"}\n" +
					"```\n\n" +
					"The buffered channel is simpler and cheaper when there is exactly " +
					"one send. Use the select form when the worker does more work after " +
					"the send and should stop early on cancellation.",
				offset: 5 * time.Minute,
			},
			{
				role: "user",
				text: "Buffered it is. Is there a way to catch this class of bug in CI " +
					"before it ships?",
				offset: 8 * time.Minute,
			},
			{
				role: "assistant",
				text: "Yes — add `go.uber.org/goleak` to the tests that exercise the " +
					"handler. `defer goleak.VerifyNone(t)` fails the test if any " +
					"goroutine started during the test is still running at the end. It " +
					"catches exactly this shape of leak, deterministically, without " +
					"load testing.",
				offset: 9 * time.Minute,
			},
		},
	},
	{
		name: "schema-migration-plan",
		messages: []sampleMessage{
			{
				role: "system",
				text: "You are a database reviewer. Flag anything that would lock " +
					"production tables.",
			},
			{
				role: "user",
				text: "Plan: add a NOT NULL column `tenant_id` to `events` (400M rows, " +
					"Postgres 15), backfill from `accounts`, then add an index on " +
					"(tenant_id, created_at). Can I do this in one migration?",
				offset: 30 * time.Second,
			},
			{
				role: "assistant",
				text: "Not in one migration, and not with NOT NULL up front. Split it:\n\n" +
					"1. `ADD COLUMN tenant_id bigint` — nullable, no default. On " +
					"Postgres 11+ this is metadata-only and instant.\n" +
					"2. Backfill in batches (10–50k rows per transaction) keyed by " +
					"primary key range, with a pause between batches. One giant UPDATE " +
					"would bloat the table and hold locks for hours.\n" +
					"3. `CREATE INDEX CONCURRENTLY` on (tenant_id, created_at). Never " +
					"the plain form on a hot table.\n" +
					"4. `ADD CONSTRAINT ... CHECK (tenant_id IS NOT NULL) NOT VALID`, " +
					"then `VALIDATE CONSTRAINT` — validation takes a weaker lock than " +
					"`SET NOT NULL` would.\n" +
					"5. On 12+, `SET NOT NULL` after the validated check constraint is " +
					"cheap because Postgres uses the constraint as proof.\n\n" +
					"Each step is separately deployable and separately revertible.",
				offset: 2 * time.Minute,
			},
			{
				role:   "user",
				text:   "What should the batch backfill watch for while it runs?",
				offset: 6 * time.Minute,
			},
			{
				role: "assistant",
				text: "Three gauges: replication lag (pause when it climbs), dead tuple " +
					"count on `events` (autovacuum must keep up with your churn), and " +
					"lock waits from the application (your batches should never show up " +
					"there — if they do, shrink the batch). Log the last-processed key " +
					"so the job is resumable from where it stopped.",
				offset: 7 * time.Minute,
			},
		},
	},
}

package voting

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinRabun/TruePulse-sub002/models"
	"github.com/KevinRabun/TruePulse-sub002/testutil"
)

func TestRecountConverges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	poll := testutil.CreateTestPoll(t, db, true, "yes", "no")
	yes, no := poll.Choices[0], poll.Choices[1]

	for i := 0; i < 3; i++ {
		_, err := SubmitVote(db, testutil.Salt, TallyEventual, "yes-voter-"+strconv.Itoa(i), poll.ID, yes.ID, time.Now())
		require.NoError(t, err)
	}
	_, err := SubmitVote(db, testutil.Salt, TallyEventual, "no-voter", poll.ID, no.ID, time.Now())
	require.NoError(t, err)

	// Counters trail the records until a recount runs.
	var before models.Choice
	require.NoError(t, db.First(&before, yes.ID).Error)
	assert.Equal(t, uint(0), before.Votes)

	require.NoError(t, Recount(db))

	var yesAfter, noAfter models.Choice
	require.NoError(t, db.First(&yesAfter, yes.ID).Error)
	require.NoError(t, db.First(&noAfter, no.ID).Error)
	assert.Equal(t, uint(3), yesAfter.Votes)
	assert.Equal(t, uint(1), noAfter.Votes)
}

func TestRecountIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	poll := testutil.CreateTestPoll(t, db, true, "yes", "no")

	_, err := SubmitVote(db, testutil.Salt, TallyEventual, "alice", poll.ID, poll.Choices[0].ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, Recount(db))
	require.NoError(t, Recount(db))

	var choice models.Choice
	require.NoError(t, db.First(&choice, poll.Choices[0].ID).Error)
	assert.Equal(t, uint(1), choice.Votes, "repeated recounts must not inflate the tally")
}

func TestRecounterLoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	poll := testutil.CreateTestPoll(t, db, true, "yes", "no")
	choice := poll.Choices[0]

	_, err := SubmitVote(db, testutil.Salt, TallyEventual, "alice", poll.ID, choice.ID, time.Now())
	require.NoError(t, err)

	recounter := NewRecounter(db, 10*time.Millisecond)
	recounter.Start()
	defer recounter.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var updated models.Choice
		require.NoError(t, db.First(&updated, choice.ID).Error)
		if updated.Votes == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("recounter never refreshed the tally")
}

package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameHouse is the authoritative match handler name registered with Nakama.
	MatchNameHouse = "house_match"
)

// Op codes for client commands and server events.
const (
	// Client -> Server
	OpStartSeason         int64 = 1
	OpAdvance             int64 = 2
	OpSelectNominee1      int64 = 3
	OpFinalizeNominations int64 = 4
	OpPovDecision         int64 = 5
	OpPovSaveTarget       int64 = 6
	OpReplacementNominee  int64 = 7
	OpHumanVote           int64 = 8
	OpTieBreak            int64 = 9
	OpFinal4Eviction      int64 = 10
	OpFinal3Eviction      int64 = 11
	OpMinigameResult      int64 = 12
	OpAddTvEvent          int64 = 13
	OpFinalizeSeason      int64 = 14

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpSeasonStarted int64 = 103
	OpStateSnapshot int64 = 104
	OpMinigameStart int64 = 105
	OpSeasonEnded   int64 = 106
)

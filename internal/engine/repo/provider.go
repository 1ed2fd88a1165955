package repo

import "github.com/google/wire"

var ProviderSet = wire.NewSet(
	NewAccountRepo,
	NewBlacklistRepo,
	NewComplaintRepo,
	NewCollaborationRepo,
	NewCorrectionRepo,
	NewSavedWordRepo,
)

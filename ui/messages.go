package ui

import (
	"extui/model"
)

// Message type aliases - the command results are defined in the model package
type snapshotLoadedMsg = model.SnapshotLoadedMsg
type extensionListMsg = model.ExtensionListMsg
type marketListMsg = model.MarketListMsg
type installCompleteMsg = model.InstallCompleteMsg
type updateCompleteMsg = model.UpdateCompleteMsg
type uninstallCompleteMsg = model.UninstallCompleteMsg
type toggleCompleteMsg = model.ToggleCompleteMsg
type configLoadedMsg = model.ConfigLoadedMsg
type configSavedMsg = model.ConfigSavedMsg
type restartStatusMsg = model.RestartStatusMsg

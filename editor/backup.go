package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/linsujie/bibcmd/config"
)

type backupInfo struct {
	OriginalPath string `json:"original_path"`
	Timestamp    string `json:"timestamp"`
}

func backupDir() string {
	return filepath.Join(config.DataDir(), "backups")
}

func backupPathForFile(originalPath string) string {
	h := sha256.Sum256([]byte(originalPath))
	name := fmt.Sprintf("%x.bak", h[:8])
	return filepath.Join(backupDir(), name)
}

func backupMetaPath(backupPath string) string {
	return backupPath + ".json"
}

// startBackupTimer asks the main loop for a backup every BackupInterval
// seconds until the editor exits.
func (e *Editor) startBackupTimer(screen tcell.Screen) {
	interval := time.Duration(max(e.cfg.BackupInterval, 1)) * time.Second
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-e.done:
				return
			case <-ticker.C:
				ev := &backupEvent{}
				ev.SetEventNow()
				screen.PostEvent(ev)
			}
		}
	}()
}

func (e *Editor) saveBackup() {
	if e.doc == nil || !e.doc.Dirty || e.doc.Path == "" {
		return
	}
	os.MkdirAll(backupDir(), 0755)

	bpath := backupPathForFile(e.doc.Path)
	if err := os.WriteFile(bpath, []byte(e.buf.String()), 0644); err != nil {
		log.Printf("Editor: backup %s: %v", e.doc.Path, err)
		return
	}

	meta := backupInfo{
		OriginalPath: e.doc.Path,
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	metaData, _ := json.Marshal(meta)
	os.WriteFile(backupMetaPath(bpath), metaData, 0644)
}

func (e *Editor) cleanBackup() {
	if e.doc == nil || e.doc.Path == "" {
		return
	}
	bpath := backupPathForFile(e.doc.Path)
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
}

// checkForBackup returns the recovery copy left for the open note by a
// session that did not exit cleanly.
func (e *Editor) checkForBackup() (backupInfo, string, bool) {
	var info backupInfo
	if e.doc == nil || e.doc.Path == "" {
		return info, "", false
	}
	bpath := backupPathForFile(e.doc.Path)
	data, err := os.ReadFile(backupMetaPath(bpath))
	if err != nil {
		return info, "", false
	}
	if json.Unmarshal(data, &info) != nil || info.OriginalPath != e.doc.Path {
		return info, "", false
	}
	text, err := os.ReadFile(bpath)
	if err != nil {
		return info, "", false
	}
	return info, string(text), true
}

// recoverBackup loads a recovery copy into the field as unsaved changes.
// The note on disk is left alone until the user saves.
func (e *Editor) recoverBackup() bool {
	info, text, ok := e.checkForBackup()
	if !ok {
		return false
	}
	if text == e.buf.String() {
		e.cleanBackup()
		return false
	}
	row, col := e.buf.Cursor()
	e.loadText(text)
	e.seek(row, col)
	e.markDirty()
	log.Printf("Editor: recovered backup of %s from %s", info.OriginalPath, info.Timestamp)
	e.setStatusMessage("Recovered unsaved changes from " + info.Timestamp)
	return true
}

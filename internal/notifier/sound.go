package notifier

import (
	"fmt"
	"os/exec"

	"github.com/gen2brain/beeep"
)

const SoundChannelName = "sound"

// SoundNotifier plays alert_on on FIRED and alert_off on RESOLVED through an
// external command-line player. Send returns as soon as the player has started.
type SoundNotifier struct {
	player  string
	args    []string
	onFile  string
	offFile string
	beep    func() error
}

func NewSoundNotifier(player string, args []string, onFile, offFile string) *SoundNotifier {
	return &SoundNotifier{
		player:  player,
		args:    args,
		onFile:  onFile,
		offFile: offFile,
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

func (sn *SoundNotifier) Name() string {
	return SoundChannelName
}

func (sn *SoundNotifier) Send(data NotificationData) error {
	file := sn.onFile
	if data.State == StateResolved {
		file = sn.offFile
	}
	if file == "" {
		return sn.beep()
	}

	args := append(append([]string{}, sn.args...), file)
	cmd := exec.Command(sn.player, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s for %s: %w", sn.player, file, err)
	}
	// Reap the player in the background; its exit status is not interesting.
	go func() { _ = cmd.Wait() }()
	return nil
}

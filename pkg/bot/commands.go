package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"dicesim/pkg/dice"
	"dicesim/pkg/random"
	"dicesim/pkg/report"
	"dicesim/pkg/simulation"
)

const usage = "Commands:\n" +
	"  .sim NdM [trials]  - simulate and run a Chi-Squared test (e.g. .sim 2d6 10000)\n" +
	"  .r NdM[+K]         - roll once (e.g. .r 1d20+3)\n" +
	"  .help              - show this message"

// Commands answers chat commands.
type Commands struct {
	DefaultTrials int64
	MaxTrials     int64
	// NewSeed draws the seed of each simulation or roll.
	NewSeed func() (int64, error)
}

// Reply returns the answer to msg, or false if msg is not a command.
func (c *Commands) Reply(msg string) (string, bool) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return "", false
	}
	args := fields[1:]

	switch fields[0] {
	case ".help":
		return usage, true
	case ".sim":
		reply, err := c.simulate(args)
		if err != nil {
			return fmt.Sprintf("Error: %v", err), true
		}
		return reply, true
	case ".r":
		expression := "1d20"
		if len(args) > 0 {
			expression = strings.Join(args, "")
		}
		reply, err := c.roll(expression)
		if err != nil {
			return fmt.Sprintf("Dice Error: %v", err), true
		}
		return reply, true
	default:
		return "", false
	}
}

func (c *Commands) simulate(args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("usage: .sim NdM [trials]")
	}
	expr, err := dice.ParseExpression(args[0])
	if err != nil {
		return "", err
	}
	if expr.Modifier != 0 {
		return "", fmt.Errorf("%w: modifiers are not simulated", dice.ErrInvalidExpression)
	}

	trials := c.DefaultTrials
	if len(args) == 2 {
		if trials, err = strconv.ParseInt(args[1], 10, 64); err != nil {
			return "", fmt.Errorf("trials must be a whole number, got %q", args[1])
		}
	}
	if trials > c.MaxTrials {
		return "", fmt.Errorf("at most %d trials per request", c.MaxTrials)
	}

	seed, err := c.NewSeed()
	if err != nil {
		return "", err
	}
	res, err := simulation.RunSeeded(dice.Params{Dice: expr.Count, Sides: expr.Sides, Trials: trials}, seed)
	if err != nil {
		return "", err
	}
	return report.Compact(res), nil
}

func (c *Commands) roll(expression string) (string, error) {
	seed, err := c.NewSeed()
	if err != nil {
		return "", err
	}
	res, err := dice.Roll(random.NewSource(seed), expression)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// Attach routes group messages of b through cmds and sends the replies back.
func Attach(b *OneBot, cmds *Commands) {
	b.GroupMsgHandler = func(groupID int64, senderID int64, msg string) {
		defer func() {
			if r := recover(); r != nil {
				logrus.Errorf("Panic in GroupMsgHandler: %v", r)
			}
		}()

		reply, ok := cmds.Reply(msg)
		if !ok {
			return
		}
		if err := b.SendGroupMsg(groupID, fmt.Sprintf("[CQ:at,qq=%d]\n%s", senderID, reply)); err != nil {
			logrus.Errorf("Failed to reply in group %d: %v", groupID, err)
		}
	}
}

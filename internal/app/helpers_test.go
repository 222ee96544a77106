package app

import (
	"strconv"

	"github.com/vk/burstrank/internal/testutil"
)

func formatEdge(e testutil.Edge) string {
	return strconv.FormatInt(e.From, 10) + " " + strconv.FormatInt(e.To, 10)
}

package cmd

import (
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// HostInfo prints the CPU and memory available for rendering.
func HostInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	model := "unknown"
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		model = infos[0].ModelName
	} else if err != nil {
		logger.Debugf("cpu info unavailable: %v", err)
	}

	physical, err := cpu.Counts(false)
	if err != nil {
		logger.Debugf("physical core count unavailable: %v", err)
	}

	memory := "unknown"
	if vm, err := mem.VirtualMemory(); err == nil {
		memory = fmt.Sprintf("%.1f GiB total, %.1f GiB available", gib(vm.Total), gib(vm.Available))
	} else {
		logger.Debugf("memory info unavailable: %v", err)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"OS / arch", runtime.GOOS + "/" + runtime.GOARCH},
		{"CPU", model},
		{"Physical cores", fmt.Sprintf("%d", physical)},
		{"Logical cores (default threads)", fmt.Sprintf("%d", renderer.LogicalCores())},
		{"Memory", memory},
	})
	table.Render()
	return nil
}

func gib(bytes uint64) float64 {
	return float64(bytes) / (1 << 30)
}

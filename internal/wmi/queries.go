package wmi

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const monitorIDScript = `
$toStr = {
  param([UInt16[]]$arr)
  if (-not $arr) { return $null }
  ($arr | ForEach-Object { if ($_ -gt 0 -and $_ -lt 256) { [char]$_ } }) -join ''
}
$ids = Get-CimInstance -Namespace root\wmi -Class WmiMonitorID -ErrorAction SilentlyContinue
$conn = @{}
Get-CimInstance -Namespace root\wmi -Class WmiMonitorConnectionParams -ErrorAction SilentlyContinue | ForEach-Object {
  $conn[$_.InstanceName] = $_
}
$results = @()
foreach ($m in $ids) {
  $inst = $m.InstanceName
  $c = $conn[$inst]
  $results += [pscustomobject]@{
    InstanceName          = $inst
    Manufacturer          = (& $toStr $m.ManufacturerName)
    Model                 = (& $toStr $m.UserFriendlyName)
    SerialNumber          = (& $toStr $m.SerialNumberID)
    ProductCodeId         = (& $toStr $m.ProductCodeID)
    WeekOfManufacture     = $m.WeekOfManufacture
    YearOfManufacture     = $m.YearOfManufacture
    VideoOutputTechnology = if ($c) { [uint32]$c.VideoOutputTechnology } else { $null }
    Active                = if ($c) { [bool]$c.Active } else { $null }
  }
}
if ($results) { $results | ConvertTo-Json -Depth 4 } else { '[]' }
`

const brightnessScript = `
$inst = Get-CimInstance -Namespace root/WMI -Class WmiMonitorBrightness -ErrorAction SilentlyContinue |
  Where-Object { $_.Active -eq $true } |
  Select-Object -First 1
if ($inst) {
  [pscustomobject]@{ Current = [uint32]$inst.CurrentBrightness } | ConvertTo-Json -Compress
}
`

const setBrightnessScript = `$b = [byte](%d);
$inst = Get-CimInstance -Namespace root/WMI -Class WmiMonitorBrightnessMethods -ErrorAction SilentlyContinue |
  Where-Object { $_.Active -eq $true } | Select-Object -First 1
if ($inst) {
  $r = Invoke-CimMethod -InputObject $inst -MethodName WmiSetBrightness -Arguments @{ Timeout = 0; Brightness = $b } -ErrorAction SilentlyContinue;
  if ($r -and ($r.ReturnValue -eq 0)) { 'OK' }
}`

// MonitorID is one row of the EDID metadata query.
type MonitorID struct {
	InstanceName          string `json:"InstanceName"`
	Manufacturer          string `json:"Manufacturer"`
	Model                 string `json:"Model"`
	SerialNumber          string `json:"SerialNumber"`
	ProductCodeID         string `json:"ProductCodeId"`
	WeekOfManufacture     *int   `json:"WeekOfManufacture"`
	YearOfManufacture     *int   `json:"YearOfManufacture"`
	VideoOutputTechnology *int64 `json:"VideoOutputTechnology"`
	Active                *bool  `json:"Active"`
}

// MonitorIDs returns EDID metadata for every monitor WMI knows about.
func MonitorIDs(ctx context.Context, r ScriptRunner) ([]MonitorID, error) {
	out, err := r.Run(ctx, monitorIDScript)
	if err != nil {
		return nil, fmt.Errorf("query monitor ids: %w", err)
	}
	return DecodeRecords[MonitorID](out)
}

type brightnessRecord struct {
	Current *uint32 `json:"Current"`
}

// Brightness reads the active WmiMonitorBrightness instance, clamped to 100.
func Brightness(ctx context.Context, r ScriptRunner) (uint32, error) {
	out, err := r.Run(ctx, brightnessScript)
	if err != nil {
		return 0, fmt.Errorf("query brightness: %w", err)
	}
	records, err := DecodeRecords[brightnessRecord](out)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 || records[0].Current == nil {
		return 0, errors.New("no active brightness instance")
	}
	return min(*records[0].Current, 100), nil
}

// SetBrightness calls WmiSetBrightness on the active instance.
func SetBrightness(ctx context.Context, r ScriptRunner, percent uint32) error {
	out, err := r.Run(ctx, fmt.Sprintf(setBrightnessScript, min(percent, 100)))
	if err != nil {
		return fmt.Errorf("set brightness: %w", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "OK") {
		return errors.New("WmiSetBrightness did not report success")
	}
	return nil
}

// udsprobe runs a UDS diagnostic sequence against a simulated LIN slave.
// It exists to demonstrate the engine wiring; point it at real hardware by
// swapping the mock driver for a ToomossDriver or PcanLin.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/LoveWonYoung/lintp/driver"
	"github.com/LoveWonYoung/lintp/tp"
	"github.com/rs/zerolog"

	"github.com/LoveWonYoung/udskit/linclient"
	"github.com/LoveWonYoung/udskit/uds"
)

func main() {
	configPath := flag.String("config", "", "path to TOML configuration")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "udsprobe").Logger()

	cfg, err := loadProbeConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "udsprobe: %v\n", err)
		os.Exit(1)
	}

	mockDriver := driver.NewMockDriver()
	startMockECU(mockDriver)

	transport := linclient.NewWithConfig(mockDriver, linclient.Config{
		TargetNad:      byte(cfg.TargetNad),
		ReceiveTimeout: cfg.receiveTimeout,
	})
	defer transport.Close()

	client := uds.NewClientWithOptions(transport, uds.Options{
		MaxBusyRetries:  cfg.MaxBusyRetries,
		MaxPendingWaits: cfg.MaxPendingWaits,
	})
	client.SetLogger(log)

	ctx := context.Background()

	session, err := client.DiagnosticSessionControl(ctx, uds.ExtendedDiagnosticSession)
	if err != nil {
		log.Error().Err(err).Msg("diagnostic session control failed")
	} else {
		log.Info().
			Uint8("session", session.Session).
			Uint16("p2", session.P2).
			Uint16("p2_star", session.P2Star).
			Msg("entered diagnostic session")
	}

	readData, err := client.ReadDataByIdentifier(ctx, 0xF189)
	if err != nil {
		log.Error().Err(err).Msg("read data by identifier failed")
	} else if parsed, ok := readData.Parsed(); ok {
		for _, record := range parsed.DataRecords {
			log.Info().
				Uint16("did", record.DataIdentifier).
				Hex("data", record.Data).
				Msg("read data record")
		}
	}

	dtcs, err := client.ReportDTCsByStatusMask(ctx, 0xFF)
	if err != nil {
		log.Error().Err(err).Msg("read DTC information failed")
	} else if parsed, ok := dtcs.Parsed(); ok {
		for _, record := range parsed.List.Records {
			log.Info().
				Uint32("dtc", record.DTC).
				Uint8("status", record.Status).
				Msg("stored DTC")
		}
	}

	if err := client.ClearDiagnosticInformation(ctx, 0xFFFFFF); err != nil {
		log.Error().Err(err).Msg("clear diagnostic information failed")
	} else {
		log.Info().Msg("cleared stored DTCs")
	}
}

// startMockECU answers diagnostic master frames on the mock driver.
func startMockECU(mockDriver *driver.MockDriver) {
	go func() {
		for {
			txLog := mockDriver.GetTxLog()
			if len(txLog) > 0 {
				lastTx := txLog[len(txLog)-1]
				if lastTx.EventID == tp.MasterDiagnosticFrameID {
					if response := answerRequest(lastTx.EventPayload); response != nil {
						mockDriver.InjectEvent(response)
					}
					mockDriver.ClearTxLog()
				}
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
}

// answerRequest parses a single-frame UDS request and builds the response.
func answerRequest(payload []byte) *tp.LinEvent {
	if len(payload) < 3 {
		return nil
	}

	nad := payload[0]
	pci := payload[1]
	sid := payload[2]

	if (pci >> 4) != 0 {
		return nil
	}

	response := make([]byte, 8)
	for i := range response {
		response[i] = 0xFF
	}
	response[0] = nad

	switch sid {
	case 0x10:
		if len(payload) >= 4 {
			response[1] = 0x06
			response[2] = 0x50
			response[3] = payload[3]
			response[4] = 0x00
			response[5] = 0x32
			response[6] = 0x01
			response[7] = 0xF4
		}
	case 0x22:
		if len(payload) >= 5 {
			response[1] = 0x05
			response[2] = 0x62
			response[3] = payload[3]
			response[4] = payload[4]
			response[5] = 0x01
			response[6] = 0x00
		}
	case 0x19:
		// Empty DTC list; a full 4-byte record does not fit a single frame.
		response[1] = 0x03
		response[2] = 0x59
		response[3] = payload[3]
		response[4] = 0xFF
	case 0x14:
		response[1] = 0x01
		response[2] = 0x54
	default:
		response[1] = 0x03
		response[2] = 0x7F
		response[3] = sid
		response[4] = 0x11
	}

	return &tp.LinEvent{
		EventID:      tp.SlaveDiagnosticFrameID,
		EventPayload: response,
		Direction:    tp.RX,
		Timestamp:    time.Now(),
	}
}

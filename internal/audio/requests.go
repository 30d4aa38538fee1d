package audio

// handleRequest dispatches one request to the PulseAudio client and, for
// requests that carry a reply channel, sends exactly one response before
// the next request is accepted.
func (b *Bridge) handleRequest(c *client, req AudioRequest) {
	switch req.kind {
	case reqListSinks:
		paths, err := c.listPaths("Sinks")
		resp := AudioResponse{Err: err}
		for _, p := range paths {
			if s, err := c.readSink(p); err == nil {
				resp.Sinks = append(resp.Sinks, s)
			}
		}
		reply(req, resp)

	case reqListSources:
		paths, err := c.listPaths("Sources")
		resp := AudioResponse{Err: err}
		for _, p := range paths {
			if s, err := c.readSource(p); err == nil {
				resp.Sources = append(resp.Sources, s)
			}
		}
		reply(req, resp)

	case reqListInputStreams:
		paths, err := c.listPaths("PlaybackStreams")
		resp := AudioResponse{Err: err}
		for _, p := range paths {
			if s, err := c.readInputStream(p); err == nil {
				resp.InputStreams = append(resp.InputStreams, s)
			}
		}
		reply(req, resp)

	case reqListOutputStreams:
		paths, err := c.listPaths("RecordStreams")
		resp := AudioResponse{Err: err}
		for _, p := range paths {
			if s, err := c.readOutputStream(p); err == nil {
				resp.OutputStreams = append(resp.OutputStreams, s)
			}
		}
		reply(req, resp)

	case reqListCards:
		paths, err := c.listPaths("Cards")
		resp := AudioResponse{Err: err}
		for _, p := range paths {
			if card, err := c.readCard(p); err == nil {
				resp.Cards = append(resp.Cards, card)
			}
		}
		reply(req, resp)

	case reqGetDefaultSink:
		if req.name == "" {
			return
		}
		b.getDefault(c, "Sink", req)

	case reqGetDefaultSource:
		if req.name == "" {
			return
		}
		b.getDefault(c, "Source", req)

	case reqSetSinkVolume:
		err := c.setVolume(sinkPath(req.index), ifaceDevice, req.volume.Channels, req.volume.Volume)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetSinkMute:
		err := c.setMute(sinkPath(req.index), ifaceDevice, req.mute)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetDefaultSink:
		err := c.setFallback("Sink", sinkPath(req.index))
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetSourceVolume:
		err := c.setVolume(sourcePath(req.index), ifaceDevice, req.volume.Channels, req.volume.Volume)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetSourceMute:
		err := c.setMute(sourcePath(req.index), ifaceDevice, req.mute)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetDefaultSource:
		err := c.setFallback("Source", sourcePath(req.index))
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetSinkOfInputStream:
		err := c.setStreamDevice(streamPath(req.index), req.path)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetInputStreamVolume:
		err := c.setVolume(streamPath(req.index), ifaceStream, req.volume.Channels, req.volume.Volume)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetInputStreamMute:
		err := c.setMute(streamPath(req.index), ifaceStream, req.mute)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetSourceOfOutputStream:
		err := c.setStreamDevice(recordStreamPath(req.index), req.path)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetOutputStreamVolume:
		err := c.setVolume(recordStreamPath(req.index), ifaceStream, req.volume.Channels, req.volume.Volume)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetOutputStreamMute:
		err := c.setMute(recordStreamPath(req.index), ifaceStream, req.mute)
		reply(req, AudioResponse{OK: err == nil, Err: err})

	case reqSetCardProfileOfDevice:
		err := c.setCardProfile(cardPath(req.index), req.profile)
		reply(req, AudioResponse{OK: err == nil, Err: err})
	}
}

func (b *Bridge) getDefault(c *client, which string, req AudioRequest) {
	path, err := c.pathByName(which, req.name)
	if err != nil {
		reply(req, AudioResponse{Err: err})
		return
	}

	if which == "Sink" {
		s, err := c.readSink(path)
		reply(req, AudioResponse{Sink: &s, Err: err})
		return
	}

	s, err := c.readSource(path)
	reply(req, AudioResponse{Source: &s, Err: err})
}

func reply(req AudioRequest, resp AudioResponse) {
	if req.reply == nil {
		return
	}
	req.reply <- resp
}

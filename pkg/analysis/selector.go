package analysis

//TrackSelector pins the analysis to the first confirmed track it ever sees.
//The chosen identity is never reassigned, a lost track is not re-acquired.
type TrackSelector struct {
	chosenID string
	locked   bool
}

//Select returns the chosen track among given tracks, adopting the first confirmed one if nothing was chosen yet.
//Returns false when the chosen identity is absent from this frame.
func (s *TrackSelector) Select(tracks []Track) (Track, bool) {
	for _, track := range tracks {
		if !track.Confirmed {
			continue
		}

		if !s.locked {
			s.chosenID = track.ID
			s.locked = true
		}

		if track.ID == s.chosenID {
			return track, true
		}
	}

	return Track{}, false
}

//ChosenID returns the pinned identity, false if no confirmed track was seen yet
func (s *TrackSelector) ChosenID() (string, bool) {
	return s.chosenID, s.locked
}

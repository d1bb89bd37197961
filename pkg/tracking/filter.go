package tracking

//FilterDetections relabels every frame with canonical roles, dropping tracks absent from the mapping.
//The output has one entry per input frame, in the same order; neither input is modified.
func FilterDetections(mapping RoleMapping, frames []FrameDetections) []RoleDetections {
	filtered := make([]RoleDetections, 0, len(frames))
	for _, frame := range frames {
		roles := make(RoleDetections)
		for id, box := range frame {
			if role, ok := mapping[id]; ok {
				roles[role] = box
			}
		}
		filtered = append(filtered, roles)
	}

	return filtered
}

//ChooseAndFilter assigns roles on the first frame and applies the mapping to the whole sequence
func ChooseAndFilter(kps CourtKeypoints, frames []FrameDetections, policy Policy) (RoleMapping, []RoleDetections, error) {
	var reference FrameDetections
	if len(frames) > 0 {
		reference = frames[0]
	}

	mapping, err := AssignRoles(kps, reference, policy)
	if err != nil {
		return nil, nil, err
	}

	return mapping, FilterDetections(mapping, frames), nil
}
